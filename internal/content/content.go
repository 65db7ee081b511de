// Package content holds the static page copy served by the view endpoints.
package content

// Hero is the home page hero section.
type Hero struct {
	Badge    string `json:"badge"`
	Headline string `json:"headline"`
	Accent   string `json:"accent"`
	Tagline  string `json:"tagline"`
}

// Testimonial is the home page client quote.
type Testimonial struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
	Role   string `json:"role"`
}

// Office is the contact page location block.
type Office struct {
	Address []string `json:"address"`
	Phone   string   `json:"phone"`
	Hours   []string `json:"hours"`
	MapURL  string   `json:"map_url"`
}

// HomeHero returns the hero copy.
func HomeHero() Hero {
	return Hero{
		Badge:    "Welcome to Bebest Group",
		Headline: "Synergy in Service,",
		Accent:   "Excellence in Execution.",
		Tagline: "A diversified conglomerate delivering integrated solutions across " +
			"employment, insurance, management, and technology sectors.",
	}
}

// TrustPoints returns the home page credibility bullets.
func TrustPoints() []string {
	return []string{
		"Integrated workflow between insurance and HR.",
		"Tech-driven management solutions.",
		"End-to-end employee lifecycle management.",
	}
}

// HomeTestimonial returns the client quote.
func HomeTestimonial() Testimonial {
	return Testimonial{
		Quote:  "Bebest Group streamlined our entire hiring process, from permits to insurance coverage. A truly one-stop solution.",
		Author: "Sarah Jenkins",
		Role:   "Director of Ops, TechFlow Inc.",
	}
}

// ContactOffice returns the office details.
func ContactOffice() Office {
	return Office{
		Address: []string{"No.27, 1st Flr, Airport Mall", "Berakas, BB2713", "Brunei Darussalam"},
		Phone:   "8111786",
		Hours: []string{
			"Monday - Friday: 8:00 AM - 5:00 PM",
			"Saturday: 8:00 AM - 12:00 PM",
			"Sunday: Closed",
		},
		MapURL: "https://www.google.com/maps/search/?api=1&query=Airport+Mall+Berakas",
	}
}

// ChatGreeting is the assistant message seeding a fresh widget transcript.
const ChatGreeting = "Hi there! \U0001F44B I'm Ask Bebest. How can I help you with our services today?"

// WhyChooseUs returns the service detail page selling points.
func WhyChooseUs() []string {
	return []string{
		"Industry compliant processes",
		"Dedicated support team",
		"Streamlined efficiency",
		"Transparent reporting",
	}
}
