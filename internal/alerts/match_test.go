package alerts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_CaseInsensitive(t *testing.T) {
	user := UserProfile{ID: "u1", Skills: []string{"Python"}}
	jobs := []JobPosting{
		{ID: "j1", Title: "Backend Dev", Skills: []string{"python"}},
		{ID: "j2", Title: "Data Eng", Skills: []string{"PYTHON"}},
		{ID: "j3", Title: "Frontend Dev", Skills: []string{"TypeScript"}},
	}

	matched := Match(user, jobs)
	require.Len(t, matched, 2)
	assert.Equal(t, "j1", matched[0].ID)
	assert.Equal(t, "j2", matched[1].ID)
}

func TestMatch_PreservesCatalogOrder(t *testing.T) {
	user := UserProfile{Skills: []string{"go", "react"}}
	jobs := []JobPosting{
		{ID: "j3", Skills: []string{"React"}},
		{ID: "j1", Skills: []string{"Go"}},
		{ID: "j2", Skills: []string{"Rust"}},
		{ID: "j4", Skills: []string{"go", "react"}},
	}

	matched := Match(user, jobs)
	require.Len(t, matched, 3)
	assert.Equal(t, []string{"j3", "j1", "j4"}, []string{matched[0].ID, matched[1].ID, matched[2].ID})
}

func TestMatch_EmptySkillJobsNeverMatch(t *testing.T) {
	user := UserProfile{Skills: []string{"go"}}
	jobs := []JobPosting{
		{ID: "j1", Skills: nil},
		{ID: "j2", Skills: []string{}},
	}

	assert.Empty(t, Match(user, jobs), "no skills is not a universal match")
}

func TestMatch_InterestsDoNotDriveMatching(t *testing.T) {
	user := UserProfile{Interests: []string{"go"}}
	jobs := []JobPosting{{ID: "j1", Skills: []string{"Go"}}}

	assert.Empty(t, Match(user, jobs), "only skills participate in matching")
}

func TestMatchedSkills(t *testing.T) {
	user := UserProfile{Skills: []string{"react", "node"}}
	job := JobPosting{Skills: []string{"React", "Python"}}

	assert.Equal(t, []string{"react"}, MatchedSkills(user, job))
}

func TestMatchedSkills_Deduplicates(t *testing.T) {
	user := UserProfile{Skills: []string{"Go", "go", "GO"}}
	job := JobPosting{Skills: []string{"go"}}

	assert.Equal(t, []string{"go"}, MatchedSkills(user, job))
}

func TestMatchedInterests(t *testing.T) {
	user := UserProfile{
		Skills:    []string{"react"},
		Interests: []string{"Machine Learning", "python"},
	}
	job := JobPosting{Skills: []string{"Python", "React"}}

	assert.Equal(t, []string{"python"}, MatchedInterests(user, job))
}

func TestHasMatchableProfile(t *testing.T) {
	assert.False(t, HasMatchableProfile(UserProfile{}))
	assert.True(t, HasMatchableProfile(UserProfile{Skills: []string{"go"}}))
	assert.True(t, HasMatchableProfile(UserProfile{Interests: []string{"ml"}}))
}
