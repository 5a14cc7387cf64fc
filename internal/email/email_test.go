package email

import (
	"context"
	"errors"
	"testing"

	"triveni_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProvider struct {
	sent []*Email
	err  error
}

func (p *recordingProvider) Send(email *Email) error {
	p.sent = append(p.sent, email)
	return p.err
}

func (p *recordingProvider) SendTemplate(to []string, subject, name string, data TemplateData) error {
	body, err := NewTemplateManager().Render(name, data)
	if err != nil {
		return err
	}
	return p.Send(&Email{To: to, Subject: subject, HTMLBody: body})
}

func TestBuiltinTemplatesRender(t *testing.T) {
	tm := NewTemplateManager()
	for name := range builtinTemplates {
		_, err := tm.Render(name, TemplateData{})
		assert.NoError(t, err, name)
	}

	_, err := tm.Render("missing", nil)
	assert.Error(t, err)
}

func TestNotifier_ContactReceivedEscapesInput(t *testing.T) {
	p := &recordingProvider{}
	n := NewNotifier(p, "inbox@example.com")

	n.ContactReceived(context.Background(), &models.Contact{
		Name:    "<script>x</script>",
		Subject: "Quote",
		Message: "Hello",
	})

	require.Len(t, p.sent, 1)
	assert.Equal(t, []string{"inbox@example.com"}, p.sent[0].To)
	assert.Equal(t, "New contact inquiry: Quote", p.sent[0].Subject)
	assert.NotContains(t, p.sent[0].HTMLBody, "<script>")
}

func TestNotifier_SkipsWithoutInboxAndSwallowsErrors(t *testing.T) {
	p := &recordingProvider{err: errors.New("smtp down")}

	NewNotifier(p, "").ApplicationSubmitted(context.Background(), &models.Application{})
	assert.Empty(t, p.sent)

	NewNotifier(p, "hr@example.com").ApplicationSubmitted(context.Background(), &models.Application{Position: "Welder"})
	assert.Len(t, p.sent, 1)
}
