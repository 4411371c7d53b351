package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"resume-analyzer-go/internal/config"
	"resume-analyzer-go/internal/storage/models"
	"resume-analyzer-go/internal/types"
	"resume-analyzer-go/internal/utils"
)

// MySQL 关系型数据库适配器
type MySQL struct {
	db  *gorm.DB
	cfg *config.MySQLConfig
}

// NewMySQL 创建MySQL连接并自动迁移表结构
func NewMySQL(cfg *config.MySQLConfig) (*MySQL, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MySQL配置不能为空")
	}

	connectTimeout := cfg.ConnectTimeoutSeconds
	if connectTimeout <= 0 {
		connectTimeout = 10
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database, connectTimeout)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("连接MySQL失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetimeMinutes > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	}

	if err := db.AutoMigrate(
		&models.Candidate{},
		&models.ResumeSubmission{},
		&models.ResumeAnalysisRecord{},
	); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("自动迁移数据库结构失败: %w", err)
	}

	return &MySQL{db: db, cfg: cfg}, nil
}

// DB 暴露底层gorm实例，供测试和特殊查询使用
func (m *MySQL) DB() *gorm.DB {
	return m.db
}

// Close 关闭数据库连接
func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	return sqlDB.Close()
}

// CreateSubmission 创建一条提交记录
func (m *MySQL) CreateSubmission(ctx context.Context, sub *models.ResumeSubmission) error {
	return m.db.WithContext(ctx).Create(sub).Error
}

// GetSubmission 按UUID查询提交记录
func (m *MySQL) GetSubmission(ctx context.Context, submissionUUID string) (*models.ResumeSubmission, error) {
	var sub models.ResumeSubmission
	err := m.db.WithContext(ctx).Where("submission_uuid = ?", submissionUUID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// UpdateSubmissionStatus 更新提交的处理状态
func (m *MySQL) UpdateSubmissionStatus(ctx context.Context, submissionUUID, status string) error {
	result := m.db.WithContext(ctx).Model(&models.ResumeSubmission{}).
		Where("submission_uuid = ?", submissionUUID).
		Update("processing_status", status)
	if result.Error != nil {
		return fmt.Errorf("更新提交状态失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindOrCreateCandidate 按邮箱或电话归并候选人。
// 命中已有记录时回填缺失的主档字段，否则新建。
func (m *MySQL) FindOrCreateCandidate(ctx context.Context, contact *types.ContactFields) (*models.Candidate, error) {
	return findOrCreateCandidate(m.db.WithContext(ctx), contact)
}

func findOrCreateCandidate(db *gorm.DB, contact *types.ContactFields) (*models.Candidate, error) {
	email := contactValue(contact.Email)
	phone := contactValue(contact.Phone)
	if email == "" && phone == "" {
		return nil, fmt.Errorf("缺少可用于归并的邮箱或电话")
	}

	var candidate models.Candidate
	query := db
	switch {
	case email != "" && phone != "":
		query = query.Where("primary_email = ? OR primary_phone = ?", email, phone)
	case email != "":
		query = query.Where("primary_email = ?", email)
	default:
		query = query.Where("primary_phone = ?", phone)
	}

	err := query.First(&candidate).Error
	if err == nil {
		// 回填缺失字段
		updates := map[string]interface{}{}
		if candidate.PrimaryEmail == "" && email != "" {
			updates["primary_email"] = email
		}
		if candidate.PrimaryPhone == "" && phone != "" {
			updates["primary_phone"] = phone
		}
		if candidate.PrimaryName == "" {
			if name := contactValue(contact.Name); name != "" {
				updates["primary_name"] = name
			}
		}
		if len(updates) > 0 {
			if err := db.Model(&candidate).Updates(updates).Error; err != nil {
				return nil, fmt.Errorf("回填候选人主档失败: %w", err)
			}
		}
		return &candidate, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("查询候选人失败: %w", err)
	}

	candidate = models.Candidate{
		CandidateID:     uuid.New().String(),
		PrimaryName:     contactValue(contact.Name),
		PrimaryEmail:    email,
		PrimaryPhone:    phone,
		CurrentLocation: contactValue(contact.Location),
		ProfileSummary:  contactValue(contact.Summary),
	}
	if err := db.Create(&candidate).Error; err != nil {
		return nil, fmt.Errorf("创建候选人失败: %w", err)
	}
	return &candidate, nil
}

// SaveAnalysis 持久化分析结果并关联候选人，单事务完成。
// 同一提交重复分析时覆盖旧记录。
func (m *MySQL) SaveAnalysis(ctx context.Context, submissionUUID string, analysis *types.ResumeAnalysis) error {
	record := &models.ResumeAnalysisRecord{
		SubmissionUUID:   submissionUUID,
		ContactJSON:      utils.ToJSON(analysis.Contact),
		SectionsJSON:     utils.ToJSON(analysis.Sections),
		SkillsJSON:       utils.ToJSON(analysis.Skills),
		ExperienceJSON:   utils.ToJSON(analysis.Experience),
		EducationJSON:    utils.ToJSON(analysis.Education),
		QualityScore:     analysis.Quality.Score,
		Completeness:     analysis.Quality.Completeness,
		Clarity:          analysis.Quality.Clarity,
		Relevance:        analysis.Quality.Relevance,
		Formatting:       analysis.Quality.Formatting,
		ExtractionMethod: string(analysis.ExtractionMethod),
		ParserVersion:    analysis.ParserVersion,
		ProcessedAt:      analysis.ProcessedAt,
	}

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "submission_uuid"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"contact_json", "sections_json", "skills_json", "experience_json", "education_json",
				"quality_score", "completeness", "clarity", "relevance", "formatting",
				"extraction_method", "parser_version", "processed_at",
			}),
		}).Create(record).Error; err != nil {
			return fmt.Errorf("保存分析记录失败: %w", err)
		}

		// 有可归并的联系信息时挂接候选人
		if contactValue(analysis.Contact.Email) != "" || contactValue(analysis.Contact.Phone) != "" {
			candidate, err := findOrCreateCandidate(tx, &analysis.Contact)
			if err != nil {
				return err
			}
			if err := tx.Model(&models.ResumeSubmission{}).
				Where("submission_uuid = ?", submissionUUID).
				Update("candidate_id", candidate.CandidateID).Error; err != nil {
				return fmt.Errorf("关联候选人失败: %w", err)
			}
		}
		return nil
	})
}

// GetAnalysis 按提交UUID查询分析记录
func (m *MySQL) GetAnalysis(ctx context.Context, submissionUUID string) (*models.ResumeAnalysisRecord, error) {
	var record models.ResumeAnalysisRecord
	err := m.db.WithContext(ctx).Where("submission_uuid = ?", submissionUUID).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func contactValue(f *types.ContactField) string {
	if f == nil {
		return ""
	}
	return f.Value
}
