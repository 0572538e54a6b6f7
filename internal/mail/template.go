package mail

const alertHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Job.Title}}{{if .Job.Company}} at {{.Job.Company}}{{end}}</title>
  <style>
    body {
      margin: 0;
      padding: 24px;
      background-color: #f3f4f6;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
      color: #111827;
      line-height: 1.5;
    }

    .container {
      max-width: 640px;
      margin: 0 auto;
      background: #ffffff;
      border-radius: 8px;
      border: 1px solid #e5e7eb;
      overflow: hidden;
    }

    .header {
      padding: 20px 24px;
      background: linear-gradient(135deg, #1e3a8a 0%, #1d4ed8 100%);
      color: #ffffff;
    }

    .job-title {
      font-size: 22px;
      font-weight: 700;
      margin-bottom: 4px;
    }

    .company {
      font-size: 15px;
      opacity: 0.9;
    }

    .section {
      padding: 16px 24px;
      border-top: 1px solid #f3f4f6;
    }

    .section-title {
      font-size: 11px;
      font-weight: 700;
      color: #6b7280;
      text-transform: uppercase;
      letter-spacing: 0.1em;
      margin-bottom: 12px;
    }

    .skills-list {
      display: flex;
      flex-wrap: wrap;
      gap: 6px;
      margin: 0;
      padding: 0;
      list-style: none;
    }

    .skill-tag {
      display: inline-block;
      padding: 3px 10px;
      font-size: 12px;
      font-weight: 500;
      background: #e0f2fe;
      color: #0369a1;
      border-radius: 4px;
    }

    .interest-tag {
      display: inline-block;
      padding: 3px 10px;
      font-size: 12px;
      font-weight: 500;
      background: #dcfce7;
      color: #15803d;
      border-radius: 4px;
    }

    .footer {
      padding: 16px 24px;
      font-size: 12px;
      color: #9ca3af;
      text-align: center;
      background: #f9fafb;
      border-top: 1px solid #f3f4f6;
    }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <div class="job-title">{{.Job.Title}}</div>
      {{if .Job.Company}}<div class="company">{{.Job.Company}}</div>{{end}}
    </div>

    <div class="section">
      Hi {{if .User.Name}}{{.User.Name}}{{else}}there{{end}}, a new posting
      matches your profile.
    </div>

    {{if .MatchedSkills}}
    <div class="section">
      <div class="section-title">Your Matching Skills</div>
      <div class="skills-list">
        {{range .MatchedSkills}}
        <span class="skill-tag">{{.}}</span>
        {{end}}
      </div>
    </div>
    {{end}}

    {{if .MatchedInterests}}
    <div class="section">
      <div class="section-title">Your Matching Interests</div>
      <div class="skills-list">
        {{range .MatchedInterests}}
        <span class="interest-tag">{{.}}</span>
        {{end}}
      </div>
    </div>
    {{end}}

    <div class="footer">
      You receive these alerts because job notifications are enabled on your
      JobPulse profile.
    </div>
  </div>
</body>
</html>`
