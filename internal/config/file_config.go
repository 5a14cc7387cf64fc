package config

// FileRule описывает ограничения на загружаемый файл.
type FileRule struct {
	MaxSize      int64
	Extensions   []string // в нижнем регистре, с точкой
	AllowedTypes []string // MIME-типы, определенные по содержимому
	Prefix       string   // каталог внутри хранилища
}

// ResumeFileRule - резюме: PDF/DOC/DOCX.
// .doc определяется как OLE-контейнер, .docx как zip-архив.
func ResumeFileRule(cfg *Config) FileRule {
	return FileRule{
		MaxSize:    cfg.Upload.ResumeMaxSize,
		Extensions: []string{".pdf", ".doc", ".docx"},
		AllowedTypes: []string{
			"application/pdf",
			"application/msword",
			"application/x-ole-storage",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"application/zip",
		},
		Prefix: "resumes",
	}
}

// ImageFileRule - картинки блога.
func ImageFileRule(cfg *Config) FileRule {
	return FileRule{
		MaxSize:      cfg.Upload.ImageMaxSize,
		Extensions:   []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
		AllowedTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
		Prefix:       "blogs",
	}
}
