package view

// Highlight is a titled blurb shown in a grid.
type Highlight struct {
	Slug        string
	Title       string
	Description string
}

// Step is one stage of the how-it-works section.
type Step struct {
	Number      int
	Title       string
	Description string
}

// Stat is a headline number.
type Stat struct {
	Value string
	Label string
}

// Features are the landing page feature cards. Slug is the explore target.
var Features = []Highlight{
	{"mood-tracking", "Mood Tracking", "Log how you feel and let AI surface the patterns behind your days."},
	{"ai-therapy", "AI Therapy", "Guided sessions that adapt to what you are going through right now."},
	{"music-healing", "Music Healing", "Playlists tuned to your mood to help you unwind or refocus."},
	{"community", "Community", "Share your journey with people who understand it."},
}

// Steps describe how the product works.
var Steps = []Step{
	{1, "Check in", "Tell us how you are feeling in a few taps."},
	{2, "Get insights", "See trends in your mood and what influences them."},
	{3, "Take action", "Follow personalized sessions, music and community support."},
}

// AuthHighlights are listed on the sign-in prompt of protected pages.
var AuthHighlights = []Highlight{
	{"mood-tracking", "Mood Tracking", "AI-powered emotion analysis"},
	{"community", "Community Support", "Connect with others on similar journeys"},
	{"ai-therapy", "Personalized Therapy", "Tailored mental wellness sessions"},
	{"privacy", "Private & Secure", "Your data is always protected"},
}

// AccountBenefits answer "why create an account?".
var AccountBenefits = []string{
	"Track your mood patterns with AI insights",
	"Access personalized therapy sessions",
	"Connect with supportive community",
	"Enjoy curated music for healing",
}

// CommunityStats are shown above the testimonials.
var CommunityStats = []Stat{
	{"10,000+", "Happy Users"},
	{"4.9", "Average Rating"},
	{"95%", "Success Rate"},
}
