// @title           Triveni API
// @version         1.0
// @description     REST API корпоративного сайта: вакансии, отклики, блог, обращения и админка.
// @contact.name    Triveni Engineering
// @contact.email   info@triveni.com
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:5000
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"os"

	"triveni_backend/internal/logger"

	_ "triveni_backend/docs"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
