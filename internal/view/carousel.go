package view

import "unicode/utf8"

// TestimonialsPerPage is the number of testimonials visible at once.
const TestimonialsPerPage = 3

// excerptLength is the quote length shown before "Read more".
const excerptLength = 120

// Testimonial is one user story.
type Testimonial struct {
	ID           int
	Author       string
	Role         string
	Location     string
	Avatar       string
	Rating       int
	Quote        string
	Verified     bool
	HelpfulVotes int
	JoinDate     string
}

// Truncated reports whether the quote is longer than its excerpt.
func (t Testimonial) Truncated() bool {
	return utf8.RuneCountInString(t.Quote) > excerptLength
}

// Excerpt returns the quote cut to the excerpt length.
func (t Testimonial) Excerpt() string {
	if !t.Truncated() {
		return t.Quote
	}
	return string([]rune(t.Quote)[:excerptLength]) + "..."
}

// Carousel is a window over testimonials that moves one item at a time.
// The start index is always within [0, len-perPage].
type Carousel struct {
	items   []Testimonial
	perPage int
	index   int
}

// NewCarousel returns a carousel positioned at index, clamped into range.
func NewCarousel(items []Testimonial, perPage, index int) Carousel {
	if perPage < 1 {
		perPage = 1
	}
	c := Carousel{items: items, perPage: perPage}
	c.index = c.clamp(index)
	return c
}

// MaxIndex is the last valid start index.
func (c Carousel) MaxIndex() int {
	return max(0, len(c.items)-c.perPage)
}

func (c Carousel) clamp(i int) int {
	return min(max(i, 0), c.MaxIndex())
}

// Index is the current start index.
func (c Carousel) Index() int {
	return c.index
}

// Visible returns the testimonials in the current window.
func (c Carousel) Visible() []Testimonial {
	end := min(c.index+c.perPage, len(c.items))
	return c.items[c.index:end]
}

// Next is the index after moving forward, stopping at MaxIndex.
func (c Carousel) Next() int {
	return c.clamp(c.index + 1)
}

// Prev is the index after moving back, stopping at zero.
func (c Carousel) Prev() int {
	return c.clamp(c.index - 1)
}

// HasPrev reports whether the window can move back.
func (c Carousel) HasPrev() bool {
	return c.index > 0
}

// HasNext reports whether the window can move forward.
func (c Carousel) HasNext() bool {
	return c.index < c.MaxIndex()
}

// Paged reports whether there are more testimonials than fit one window.
func (c Carousel) Paged() bool {
	return len(c.items) > c.perPage
}

// Dots returns every valid start index, for pagination.
func (c Carousel) Dots() []int {
	dots := make([]int, c.MaxIndex()+1)
	for i := range dots {
		dots[i] = i
	}
	return dots
}

// TestimonialExists reports whether id names one of the landing testimonials.
func TestimonialExists(id int) bool {
	for _, t := range Testimonials {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Testimonials are the landing page user stories.
var Testimonials = []Testimonial{
	{
		ID: 1, Author: "Sarah Chen", Role: "Graduate Student", Location: "Seattle, WA", Avatar: "SC",
		Rating: 5, Verified: true, HelpfulVotes: 42, JoinDate: "Member since 2023",
		Quote: "Tracking my mood every evening showed me how much my sleep shaped my week. The insights were gentle and never judgmental, and within a month I had routines that actually stuck.",
	},
	{
		ID: 2, Author: "Marcus Johnson", Role: "Software Engineer", Location: "Austin, TX", Avatar: "MJ",
		Rating: 5, Verified: true, HelpfulVotes: 31, JoinDate: "Member since 2024",
		Quote: "The music sessions help me reset between meetings.",
	},
	{
		ID: 3, Author: "Elena Rodriguez", Role: "Nurse", Location: "Miami, FL", Avatar: "ER",
		Rating: 4, Verified: false, HelpfulVotes: 18, JoinDate: "Member since 2024",
		Quote: "After long shifts the guided sessions give me space to decompress. It feels like someone is listening even at three in the morning when nobody else is awake.",
	},
	{
		ID: 4, Author: "David Kim", Role: "Teacher", Location: "Chicago, IL", Avatar: "DK",
		Rating: 5, Verified: true, HelpfulVotes: 27, JoinDate: "Member since 2023",
		Quote: "The community forum reminded me I was not the only one struggling with burnout.",
	},
	{
		ID: 5, Author: "Aisha Patel", Role: "Designer", Location: "Toronto, ON", Avatar: "AP",
		Rating: 5, Verified: true, HelpfulVotes: 39, JoinDate: "Member since 2022",
		Quote: "I started with the mood tracker and stayed for the people. Seeing my progress charted over six months gave me the confidence to keep going when things got hard again.",
	},
}
