package web

// Page copy that is not part of the portfolio data itself.
var (
	projectsTitle    = "Projects"
	projectsSubtitle = "Selected work & experiments"

	experienceTitle    = "Experience"
	experienceSubtitle = "What I've been up to"

	skillsTitle    = "Skills"
	skillsSubtitle = "Tools I use often"

	contactTitle    = "Contact"
	contactSubtitle = "Let's build something together"

	emptyGallery = "No projects use this technology yet."

	contactSuccess = "Thank you for your message! I'll get back to you soon."
	contactFailure = "Sorry, there was an error sending your message. Please try again later."
)

type section struct {
	ID       string
	Title    string
	Subtitle string
}

var (
	projectsSection   = section{ID: "projects", Title: projectsTitle, Subtitle: projectsSubtitle}
	experienceSection = section{ID: "experience", Title: experienceTitle, Subtitle: experienceSubtitle}
	skillsSection     = section{ID: "skills", Title: skillsTitle, Subtitle: skillsSubtitle}
	contactSection    = section{ID: "contact", Title: contactTitle, Subtitle: contactSubtitle}
)
