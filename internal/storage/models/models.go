package models

import (
	"time"

	"gorm.io/datatypes"
)

// Candidate 候选人主档表。邮箱和电话各自唯一，用于提交归并。
type Candidate struct {
	CandidateID     string    `gorm:"type:char(36);primaryKey"`
	PrimaryName     string    `gorm:"type:varchar(255)"`
	PrimaryPhone    string    `gorm:"type:varchar(50);uniqueIndex:idx_candidates_primary_phone_unique"`
	PrimaryEmail    string    `gorm:"type:varchar(255);uniqueIndex:idx_candidates_primary_email_unique"`
	CurrentLocation string    `gorm:"type:varchar(255)"`
	ProfileSummary  string    `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt       time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (Candidate) TableName() string {
	return "candidates"
}

// ResumeSubmission 一次简历提交记录
type ResumeSubmission struct {
	SubmissionUUID      string    `gorm:"type:char(36);primaryKey"`
	CandidateID         *string   `gorm:"type:char(36);index:idx_rs_candidate_id"`
	SubmissionTimestamp time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);index:idx_rs_submission_timestamp"`
	SourceChannel       string    `gorm:"type:varchar(100)"`
	OriginalFilename    string    `gorm:"type:varchar(255)"`
	OriginalFilePathOSS string    `gorm:"type:varchar(1024)"`
	ParsedTextPathOSS   string    `gorm:"type:varchar(1024)"`
	ParsedTextMD5       string    `gorm:"type:char(32);index:idx_rs_parsed_text_md5"`
	ProcessingStatus    string    `gorm:"type:varchar(50);default:'PENDING_ANALYSIS';index:idx_rs_processing_status"`
	ParserVersion       string    `gorm:"type:varchar(50)"`
	CreatedAt           time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt           time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`

	Candidate *Candidate `gorm:"foreignKey:CandidateID;references:CandidateID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (ResumeSubmission) TableName() string {
	return "resume_submissions"
}

// ResumeAnalysisRecord 一次分析流水线的产物。
// 每个提交保留一条记录，重复分析时覆盖。
type ResumeAnalysisRecord struct {
	AnalysisDBID     uint64         `gorm:"primaryKey;autoIncrement"`
	SubmissionUUID   string         `gorm:"type:char(36);not null;uniqueIndex:idx_rar_submission_uuid"`
	ContactJSON      datatypes.JSON `gorm:"type:json"`
	SectionsJSON     datatypes.JSON `gorm:"type:json"`
	SkillsJSON       datatypes.JSON `gorm:"type:json"`
	ExperienceJSON   datatypes.JSON `gorm:"type:json"`
	EducationJSON    datatypes.JSON `gorm:"type:json"`
	QualityScore     int            `gorm:"not null;index:idx_rar_quality_score"`
	Completeness     int            `gorm:"not null"`
	Clarity          int            `gorm:"not null"`
	Relevance        int            `gorm:"not null"`
	Formatting       int            `gorm:"not null"`
	ExtractionMethod string         `gorm:"type:varchar(20);not null"`
	ParserVersion    string         `gorm:"type:varchar(50)"`
	ProcessedAt      time.Time      `gorm:"type:datetime(6)"`
	CreatedAt        time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt        time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`

	ResumeSubmission *ResumeSubmission `gorm:"foreignKey:SubmissionUUID;references:SubmissionUUID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (ResumeAnalysisRecord) TableName() string {
	return "resume_analysis_records"
}
