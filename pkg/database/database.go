package database

import (
	"fmt"
	"log"

	"quest_nos_backend/internal/config"
	"quest_nos_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !migrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.Candidate{},
		&model.Subject{},
		&model.Assessment{},
		&model.AssessmentAnswer{},
		&model.AdminUser{},
		&model.ClientBranding{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := seedSubjects(db); err != nil {
		return nil, err
	}
	if err := seedBootstrapAdmin(db); err != nil {
		return nil, err
	}

	return db, nil
}

// seedSubjects inserts the scoring categories the questionnaire sections map
// to. Names must match the section mapping; the mapping is validated against
// this set at startup.
func seedSubjects(db *gorm.DB) error {
	var count int64
	db.Model(&model.Subject{}).Count(&count)
	if count > 0 {
		return nil
	}

	defaults := []model.Subject{
		{Name: "Branding & Rebranding", Description: "Estratégia de marca, identidade visual e rebranding", Weight: 1, IsActive: true},
		{Name: "Copywriting", Description: "Técnicas de escrita persuasiva e formatos comerciais", Weight: 1, IsActive: true},
		{Name: "Redação", Description: "Conteúdo editorial, tom de voz e revisão", Weight: 1, IsActive: true},
		{Name: "Arte & Design", Description: "Design gráfico, habilidades criativas e materiais", Weight: 1, IsActive: true},
		{Name: "Mídia Social", Description: "Plataformas, gestão de comunidade e ferramentas", Weight: 1, IsActive: true},
		{Name: "Landing Pages", Description: "Desenvolvimento e otimização de páginas de conversão", Weight: 1, IsActive: true},
		{Name: "Publicidade", Description: "Tráfego pago e campanhas", Weight: 1, IsActive: true},
		{Name: "Marketing", Description: "Estratégia, funis e métricas", Weight: 1, IsActive: true},
		{Name: "Tecnologia & Automações", Description: "Automação de marketing, integrações e ferramentas", Weight: 1, IsActive: true},
		{Name: "Habilidades Complementares", Description: "Gestão de projetos, atendimento e outras skills", Weight: 1, IsActive: true},
		{Name: "Soft Skills", Description: "Competências comportamentais", Weight: 1.5, IsActive: true},
	}
	for _, s := range defaults {
		if err := db.Create(&s).Error; err != nil {
			return err
		}
	}
	return nil
}

// seedBootstrapAdmin creates the first admin account so the dashboard is
// reachable on a fresh install. The password must be rotated afterwards.
func seedBootstrapAdmin(db *gorm.DB) error {
	var count int64
	db.Model(&model.AdminUser{}).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("trocar-esta-senha"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &model.AdminUser{
		Email:        "admin@questnos.local",
		FullName:     "Administrador",
		PasswordHash: string(hash),
		Role:         model.SuperAdmin,
		IsActive:     true,
	}
	return db.Create(admin).Error
}
