package alerts

import "strings"

// Match returns the subset of jobs whose declared skills overlap the user's
// skills under case-insensitive comparison, preserving the catalog's order.
// Interests do not participate in matching; only skills drive overlap.
// Jobs with no declared skills are never candidates.
func Match(user UserProfile, jobs []JobPosting) []JobPosting {
	userSkills := lowerSet(user.Skills)
	if len(userSkills) == 0 {
		return nil
	}

	var matched []JobPosting
	for _, job := range jobs {
		if len(job.Skills) == 0 {
			continue
		}
		if overlaps(userSkills, job.Skills) {
			matched = append(matched, job)
		}
	}
	return matched
}

// MatchedSkills returns the case-insensitive intersection of the user's
// skills and the job's skills, lower-cased, in the user's declaration order.
// Used purely for email personalization.
func MatchedSkills(user UserProfile, job JobPosting) []string {
	return intersect(user.Skills, job.Skills)
}

// MatchedInterests returns the case-insensitive intersection of the user's
// interests and the job's skills, for email personalization. Interests never
// make a job a candidate on their own.
func MatchedInterests(user UserProfile, job JobPosting) []string {
	return intersect(user.Interests, job.Skills)
}

// HasMatchableProfile reports whether the user can ever be eligible for
// matching. Users with neither skills nor interests are short-circuited
// before the engine is invoked.
func HasMatchableProfile(user UserProfile) bool {
	return len(user.Skills) > 0 || len(user.Interests) > 0
}

func lowerSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

func overlaps(set map[string]struct{}, values []string) bool {
	for _, v := range values {
		if _, ok := set[strings.ToLower(strings.TrimSpace(v))]; ok {
			return true
		}
	}
	return false
}

// intersect lower-cases both sides and returns the values of `left` that
// appear in `right`, deduplicated, preserving left's order.
func intersect(left, right []string) []string {
	rightSet := lowerSet(right)
	if len(rightSet) == 0 {
		return nil
	}

	var out []string
	seen := make(map[string]struct{})
	for _, v := range left {
		lv := strings.ToLower(strings.TrimSpace(v))
		if lv == "" {
			continue
		}
		if _, dup := seen[lv]; dup {
			continue
		}
		if _, ok := rightSet[lv]; ok {
			out = append(out, lv)
			seen[lv] = struct{}{}
		}
	}
	return out
}
