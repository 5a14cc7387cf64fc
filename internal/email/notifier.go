package email

import (
	"context"

	"triveni_backend/internal/logger"
	"triveni_backend/internal/models"
)

// Notifier отправляет уведомления о новых обращениях и откликах на служебный ящик.
// Ошибки отправки только логируются.
type Notifier struct {
	provider Provider
	notifyTo string
}

func NewNotifier(provider Provider, notifyTo string) *Notifier {
	return &Notifier{provider: provider, notifyTo: notifyTo}
}

func (n *Notifier) ContactReceived(ctx context.Context, c *models.Contact) {
	n.send(ctx, "New contact inquiry: "+c.Subject, TemplateNewContact, TemplateData{
		"Name":     c.Name,
		"Email":    c.Email,
		"Phone":    c.Phone,
		"Company":  c.Company,
		"Subject":  c.Subject,
		"Message":  c.Message,
		"Priority": string(c.Priority),
	})
}

func (n *Notifier) ApplicationSubmitted(ctx context.Context, a *models.Application) {
	n.send(ctx, "New job application: "+a.Position, TemplateNewApplication, TemplateData{
		"Name":           a.Name,
		"Email":          a.Email,
		"Phone":          a.Phone,
		"Position":       a.Position,
		"Experience":     a.Experience,
		"ExpectedSalary": a.ExpectedSalary,
		"NoticePeriod":   a.NoticePeriod,
		"HasResume":      a.HasResume(),
	})
}

func (n *Notifier) send(ctx context.Context, subject, template string, data TemplateData) {
	if n == nil || n.provider == nil || n.notifyTo == "" {
		return
	}
	if err := n.provider.SendTemplate([]string{n.notifyTo}, subject, template, data); err != nil {
		logger.CtxWithError(ctx, "Notification email failed", err, "template", template)
	}
}
