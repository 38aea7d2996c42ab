package mail

import (
	"bytes"
	"fmt"
	"html/template"
)

const (
	SubjectFirstRound  = "First Round Assessment - Skill Test Invitation"
	SubjectSecondRound = "Second Round Assessment - Technical Challenge"
	SubjectHRRound     = "Selected for HR Round - Final Interview"
)

var (
	firstRoundHTML = template.Must(template.New("first").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2>First Round Assessment</h2>
<p>Dear {{.Name}},</p>
<p>Your resume has been shortlisted. Please complete the skill test using the link below.</p>
<p><a href="{{.Link}}">Start Skill Test</a></p>
<p>Best regards,<br>Team HR</p>
</div>`))

	secondRoundHTML = template.Must(template.New("second").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2>Second Round Assessment</h2>
<p>Dear {{.Name}},</p>
<p>Congratulations on passing the first round! You're now invited to the second round assessment.</p>
<ul>
<li><strong>Reasoning:</strong> {{.Reasoning}} logical reasoning questions</li>
<li><strong>Aptitude:</strong> {{.Aptitude}} mathematical/analytical questions</li>
<li><strong>Coding:</strong> {{.Coding}} programming challenges</li>
</ul>
<p><a href="{{.Link}}">Start Second Round</a></p>
<p>Time limit: 30 minutes | Good luck!</p>
</div>`))

	hrRoundHTML = template.Must(template.New("hr").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2>Selected for HR Round</h2>
<p>Dear {{.Name}},</p>
<p>We are pleased to inform you that you have been selected for the final HR interview round.</p>
<p>Resume match: {{printf "%.2f" .MatchPercent}}%<br>Test score: {{.TestScore}}</p>
<p>Our HR team will contact you shortly with the interview schedule.</p>
<p>Best regards,<br>Team HR</p>
</div>`))
)

func render(t *template.Template, data any) string {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return ""
	}
	return buf.String()
}

func FirstRoundInvitation(to, name, link string) Message {
	data := struct{ Name, Link string }{name, link}
	return Message{
		To:      to,
		Subject: SubjectFirstRound,
		Text: fmt.Sprintf(`Dear %s,

Your resume has been shortlisted. Please complete the skill test here:
%s

Best regards,
Team HR`, name, link),
		HTML: render(firstRoundHTML, data),
	}
}

type SectionCounts struct {
	Reasoning int
	Aptitude  int
	Coding    int
}

func SecondRoundInvitation(to, name, link string, counts SectionCounts) Message {
	data := struct {
		Name, Link                  string
		Reasoning, Aptitude, Coding int
	}{name, link, counts.Reasoning, counts.Aptitude, counts.Coding}
	return Message{
		To:      to,
		Subject: SubjectSecondRound,
		Text: fmt.Sprintf(`Dear %s,

Congratulations! You're invited to the second round assessment.

Assessment includes:
- Reasoning: %d questions
- Aptitude: %d questions
- Coding: %d challenges

Start here: %s

Time limit: 30 minutes
Good luck!

Team HR`, name, counts.Reasoning, counts.Aptitude, counts.Coding, link),
		HTML: render(secondRoundHTML, data),
	}
}

func HRRoundInvitation(to, name string, matchPercent float64, testScore int) Message {
	data := struct {
		Name         string
		MatchPercent float64
		TestScore    int
	}{name, matchPercent, testScore}
	return Message{
		To:      to,
		Subject: SubjectHRRound,
		Text: fmt.Sprintf(`Dear %s,

We are pleased to inform you that you have been selected for the final HR interview round.

Resume match: %.2f%%
Test score: %d

Our HR team will contact you shortly with the interview schedule.

Best regards,
Team HR`, name, matchPercent, testScore),
		HTML: render(hrRoundHTML, data),
	}
}
