package chatbot

import "strings"

// rule maps trigger substrings to a canned answer. Rules are matched in
// order, first hit wins, so more specific triggers come before generic ones.
type rule struct {
	triggers []string
	answer   string
}

var rules = []rule{
	{[]string{"when", "date"}, "FestX will be held on October 15-17, 2023 at KOED Learning College."},
	{[]string{"where", "venue", "location"}, "FestX is located at KOED Learning College, 123 College Road, Education City."},
	{[]string{"ticket", "buy", "purchase"}, "You can purchase tickets from our website. We offer day passes, concert tickets, and all-event passes."},
	{[]string{"cost", "price", "how much"}, "Day passes cost ₹499, concert tickets are ₹799, and the full festival pass is ₹1299."},
	{[]string{"perform", "artist", "singer"}, "Our main performer is a famous singer (to be announced soon) and we'll have several other artists throughout the three days."},
	{[]string{"sachin", "tendulkar", "cricket"}, "Cricket legend Sachin Tendulkar will be our chief guest for the sports events on day 2."},
	{[]string{"food", "eat", "restaurant"}, "Food options include various stalls offering diverse cuisines, vegetarian and non-vegetarian options."},
	{[]string{"park", "car", "vehicle"}, "Parking is available on campus. Please follow the signs for designated parking areas."},
	{[]string{"stay", "hotel", "accommodation"}, "We offer accommodation options nearby. Check the 'Stay Options' dropdown on our website."},
	{[]string{"register", "sign up", "join"}, "You can register for specific events through our website. Click on the 'Register Now' button for the event you're interested in."},
	{[]string{"contact", "call", "email"}, "For queries, contact us at info@koedlearning.edu or call +91 98765 43210."},
	{[]string{"time", "schedule"}, "The festival runs from 9AM to 10PM on all three days. Specific event timings are available in the schedule section."},
	{[]string{"covid", "mask", "safety"}, "We follow all COVID-19 protocols. Masks are recommended, and hand sanitization stations are available throughout the venue."},
	{[]string{"help", "assist", "support"}, "I can help you with information about event schedule, tickets, venue, food options, and more. Just ask me what you want to know!"},
}

const fallbackAnswer = "I'm sorry, I don't have information about that yet. Please contact us at info@koedlearning.edu for more details."

// Respond answers a free-text question by case-insensitive substring match
// against the rule table.
func Respond(query string) string {
	q := strings.ToLower(query)
	for _, r := range rules {
		for _, t := range r.triggers {
			if strings.Contains(q, t) {
				return r.answer
			}
		}
	}
	return fallbackAnswer
}
