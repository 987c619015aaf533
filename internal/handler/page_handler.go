package handler

import (
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

//go:embed templates/index.html
var templatesFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type pageData struct {
	Title       string
	Subtitle    string
	Placeholder string
	ErrorReply  string
}

var indexPage = pageData{
	Title:       "AI-Powered Chatbot (Multilingual)",
	Subtitle:    "Ask me anything! (मला काहीही विचारा!)",
	Placeholder: "Type your message... (तुमचा संदेश टाइप करा...)",
	ErrorReply:  "Sorry, something went wrong. Please try again.",
}

// Index handles GET / with the chat page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, indexPage); err != nil {
		requestLogger(r.Context(), h.logger).Error("render index", zap.Error(err))
	}
}
