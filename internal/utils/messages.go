package utils

import (
	"fmt"
	"time"
)

// Bilingual (English + Marathi) replies served by the chatbot.
const (
	GreetingMessage  = "Hello there! How can I assist you today? (नमस्कार! मी तुम्हाला कशी मदत करू शकतो?)"
	WellbeingMessage = "I'm a bot, so I'm doing great! Thanks for asking. (मी ठीक आहे, विचारल्याबद्दल धन्यवाद!)"
	HelpMessage      = "I can help with basic inquiries. Try asking about my purpose or capabilities. (मी तुम्हाला काही मूलभूत प्रश्नांची उत्तरे देऊ शकतो. माझ्या उद्देश किंवा क्षमतेबद्दल विचारून पहा.)"
	PurposeMessage   = "I am a simple chatbot designed to demonstrate a basic web application with a Go backend and SQLite logging. (मी एक साधा चॅटबॉट आहे जो Go बॅकएंड आणि SQLite लॉगिंगसह एक वेब ॲप्लिकेशन दर्शविण्यासाठी डिझाइन केला आहे.)"
	GoodbyeMessage   = "Goodbye! Feel free to return if you have more questions. (पुन्हा भेटू! तुम्हाला आणखी काही प्रश्न असल्यास, नक्की परत या.)"
	NameMessage      = "I don't have a name, but you can call me Chatbot. (माझे काही नाव नाही, पण तुम्ही मला चॅटबॉट म्हणू शकता.)"
	FallbackMessage  = "I'm sorry, I don't understand that. Can you please rephrase? (माफ करा, मला समजले नाही. कृपया पुन्हा सांगा.)"
)

// DateLayout renders dates as "Month DD, YYYY".
const DateLayout = "January 02, 2006"

// BuildDateMessage renders the date reply; now is formatted the same way in both languages.
func BuildDateMessage(now time.Time) string {
	d := now.Format(DateLayout)
	return fmt.Sprintf("Today's date is: %s. (आजची तारीख आहे: %s)", d, d)
}
