package view

// Landing is the body of the public landing page.
type Landing struct {
	Features      []Highlight
	Steps         []Step
	Stats         []Stat
	Carousel      Carousel
	Authenticated bool
	// Liked holds the testimonial IDs this browser liked.
	Liked map[int]bool
}

// NewLanding builds the landing page with the carousel at index.
func NewLanding(index int, authenticated bool, liked map[int]bool) Landing {
	return Landing{
		Features:      Features,
		Steps:         Steps,
		Stats:         CommunityStats,
		Carousel:      NewCarousel(Testimonials, TestimonialsPerPage, index),
		Authenticated: authenticated,
		Liked:         liked,
	}
}

// IsLiked reports whether the testimonial with id is liked.
func (l Landing) IsLiked(id int) bool {
	return l.Liked[id]
}

// Votes is the helpful count of t including this browser's like.
func (l Landing) Votes(t Testimonial) int {
	if l.IsLiked(t.ID) {
		return t.HelpfulVotes + 1
	}
	return t.HelpfulVotes
}

// Auth form modes.
const (
	ModeLogin  = "login"
	ModeSignup = "signup"
)

// Prompt is the sign-in prompt shown in place of a protected page.
type Prompt struct {
	Highlights []Highlight
	Benefits   []string
	// Mode opens one of the forms; empty shows the call to action only.
	Mode string
	// Error is the message of the last failed attempt.
	Error string
	// Email and Name refill the form after a rejected attempt.
	Email string
	Name  string
}

// NewPrompt builds a prompt opening mode.
func NewPrompt(mode string) Prompt {
	if mode != ModeLogin && mode != ModeSignup {
		mode = ""
	}
	return Prompt{Highlights: AuthHighlights, Benefits: AccountBenefits, Mode: mode}
}

// Protected is the body of a page behind the sign-in guard.
type Protected struct {
	Heading     string
	Description string
	// Assistant shows the support assistant panel.
	Assistant bool
}

// NotFound is the body of the 404 page.
type NotFound struct {
	Path string
}

// ErrorBody is the body of the generic error page.
type ErrorBody struct {
	Message string
}

// SessionUnavailable is shown when the browser session cannot be loaded.
var SessionUnavailable = ErrorBody{Message: "We could not load your session. Please try again in a moment."}
