package platform

import (
	"strings"

	"github.com/nammasuttu/feedsim/internal/event"
)

// mediaRule binds a keyword set to an illustrative image URL.
type mediaRule struct {
	keywords []string
	url      string
}

// mediaRules is a fixed priority list: the first rule with a keyword
// appearing in the event text wins. Order is significant.
var mediaRules = []mediaRule{
	{[]string{"traffic", "jam", "roadblock"}, "https://media.wired.com/photos/593256b42a990b06268a9e21/3:2/w_2240,c_limit/traffic-jam-getty.jpg"},
	{[]string{"flood", "waterlogging", "rain"}, "https://cms.accuweather.com/wp-content/uploads/2023/07/Flood_Agnostic-2.png?w=632"},
	{[]string{"band", "music", "concert", "live", "performance"}, "https://images.unsplash.com/photo-1511671782779-c97d3d27a1d4?auto=format&fit=crop&w=800&q=80"},
	{[]string{"festival", "celebration", "parade"}, "https://images.unsplash.com/photo-1506744038136-46273834b3fb?auto=format&fit=crop&w=800&q=80"},
	{[]string{"emergency", "alert", "evacuate"}, "https://images.unsplash.com/photo-1464983953574-0892a716854b?auto=format&fit=crop&w=800&q=80"},
	{[]string{"meetup", "gathering", "networking"}, "https://images.unsplash.com/photo-1504384308090-c894fdcc538d?auto=format&fit=crop&w=800&q=80"},
	{[]string{"protest", "strike", "march"}, "https://images.unsplash.com/photo-1468421870903-4df1664ac249?auto=format&fit=crop&w=800&q=80"},
	{[]string{"sports", "sport", "match", "game", "tournament"}, "https://7esl.com/wp-content/uploads/2022/08/team-sports.jpg.webp"},
	{[]string{"fire", "blaze", "burn"}, "https://images.unsplash.com/photo-1509228468518-180dd4864904?auto=format&fit=crop&w=800&q=80"},
	{[]string{"accident", "crash", "collision"}, "https://akm-img-a-in.tosshub.com/indiatoday/images/story/202503/a-car-collides-with-water-tanker-in-hyderabad-07060782-16x9_0.jpeg?VersionId=GQ.4sE3YKdCGT102yLLRgc2uBFRBTdZ5&size=690:388"},
	{[]string{"weather", "storm", "cyclone", "wind"}, "https://images.unsplash.com/photo-1506744038136-46273834b3fb?auto=format&fit=crop&w=800&q=80"},
	{[]string{"food", "cuisine", "restaurant", "dining"}, "https://images.unsplash.com/photo-1504674900247-0877df9cc836?auto=format&fit=crop&w=800&q=80"},
	{[]string{"art", "exhibition", "gallery"}, "https://images.unsplash.com/photo-1465101046530-73398c7f28ca?auto=format&fit=crop&w=800&q=80"},
	{[]string{"theatre", "play", "drama"}, "https://images.unsplash.com/photo-1464983953574-0892a716854b?auto=format&fit=crop&w=800&q=80"},
}

// placeholderMediaURL backs events no rule matches.
const placeholderMediaURL = "https://placehold.co/300"

// MediaURL derives an image URL from the event's description, title, and
// category, lowercased and matched against the priority rules.
func MediaURL(e event.Event) string {
	text := strings.ToLower(e.Description + " " + e.Title + " " + e.Category)
	for _, rule := range mediaRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.url
			}
		}
	}
	return placeholderMediaURL
}
