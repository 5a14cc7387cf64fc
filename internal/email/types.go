package email

// Email - письмо для отправки. Отправитель берется из конфигурации провайдера.
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
}

// TemplateData представляет данные для шаблонов писем
type TemplateData map[string]interface{}
