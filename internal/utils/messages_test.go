package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildDateMessage(t *testing.T) {
	now := time.Date(2026, time.March, 7, 23, 59, 0, 0, time.Local)
	msg := BuildDateMessage(now)

	assert.Equal(t, "Today's date is: March 07, 2026. (आजची तारीख आहे: March 07, 2026)", msg)
	assert.Equal(t, 2, strings.Count(msg, "March 07, 2026"))
}

func TestStaticMessagesNotEmpty(t *testing.T) {
	for _, m := range []string{GreetingMessage, WellbeingMessage, HelpMessage, PurposeMessage, GoodbyeMessage, NameMessage, FallbackMessage} {
		assert.NotEmpty(t, m)
	}
}
