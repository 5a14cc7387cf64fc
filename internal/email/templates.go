package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

const (
	TemplateNewContact     = "new_contact"
	TemplateNewApplication = "new_application"
)

var builtinTemplates = map[string]string{
	TemplateNewContact: `<h2>New inquiry: {{.Subject}}</h2>
<p><b>{{.Name}}</b> &lt;{{.Email}}&gt;{{if .Phone}}, {{.Phone}}{{end}}{{if .Company}} ({{.Company}}){{end}}</p>
<p>Priority: {{.Priority}}</p>
<p>{{.Message}}</p>`,
	TemplateNewApplication: `<h2>New application: {{.Position}}</h2>
<p><b>{{.Name}}</b> &lt;{{.Email}}&gt;, {{.Phone}}</p>
<p>Experience: {{.Experience}}. Expected salary: {{.ExpectedSalary}}. Notice period: {{.NoticePeriod}}.</p>
{{if .HasResume}}<p>Resume attached in the admin panel.</p>{{end}}`,
}

// TemplateManager хранит разобранные html-шаблоны писем.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер со встроенными шаблонами уведомлений.
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	for name, body := range builtinTemplates {
		// встроенные шаблоны проверяются тестом, ошибка здесь - ошибка сборки
		if err := tm.AddTemplate(name, body); err != nil {
			panic(err)
		}
	}
	return tm
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// AddTemplate добавляет шаблон в менеджер
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}
