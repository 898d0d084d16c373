package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeadInterest 意向等级枚举
type LeadInterest string

const (
	LeadInterestHot           LeadInterest = "HOT"
	LeadInterestWarm          LeadInterest = "WARM"
	LeadInterestCold          LeadInterest = "COLD"
	LeadInterestNotInterested LeadInterest = "NOT INTERESTED"
)

// IsValid 意向等级是否合法
func (i LeadInterest) IsValid() bool {
	switch i {
	case LeadInterestHot, LeadInterestWarm, LeadInterestCold, LeadInterestNotInterested:
		return true
	}
	return false
}

// LeadStatus 线索状态枚举
type LeadStatus string

const (
	LeadStatusOpen  LeadStatus = "Open"
	LeadStatusClose LeadStatus = "Close"
)

// IsValid 线索状态是否合法
func (s LeadStatus) IsValid() bool {
	return s == LeadStatusOpen || s == LeadStatusClose
}

// 线索来源
const (
	LeadSourceInstagram = "instagram"
	LeadSourceLinkedin  = "linkedin"
	LeadSourceReferral  = "referral"
)

// LeadTypeOther type_of_lead 为该值时必须附带 custom_type
const LeadTypeOther = "other"

var leadPhonePattern = regexp.MustCompile(`^\d{10}$`)

// Lead 销售线索，字段名与前端约定的snake_case保持一致
// created_by 创建后不可变；创建后仅 intrested/follow_up_conversation/status/updated_at 可变
type Lead struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	TypeOfLead           string             `bson:"type_of_lead" json:"type_of_lead"`
	ProjectName          string             `bson:"project_name" json:"project_name"`
	NameOfLead           string             `bson:"name_of_lead" json:"name_of_lead"`
	DesignationOfLead    string             `bson:"designation_of_lead" json:"designation_of_lead"`
	CompanyName          string             `bson:"company_name" json:"company_name"`
	PhoneNumberOfLead    string             `bson:"phone_number_of_lead" json:"phone_number_of_lead"`
	EmailOfLead          string             `bson:"email_of_lead" json:"email_of_lead"`
	SourceOfLead         string             `bson:"source_of_lead" json:"source_of_lead"`
	ReferenceName        string             `bson:"reference_name,omitempty" json:"reference_name,omitempty"`
	ReferencePhoneNumber string             `bson:"reference_phone_number,omitempty" json:"reference_phone_number,omitempty"`
	Intrested            LeadInterest       `bson:"intrested" json:"intrested"`
	FollowUpConversation string             `bson:"follow_up_conversation" json:"follow_up_conversation"`
	Status               LeadStatus         `bson:"status" json:"status"`
	CreatedBy            primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatedAt            time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt            time.Time          `bson:"updated_at" json:"updated_at"`
}

// AdminLead 管理端线索视图，附带创建人信息
type AdminLead struct {
	Lead             `bson:",inline"`
	SalesPersonName  string `json:"sales_person_name"`
	SalesPersonEmail string `json:"sales_person_email"`
}

// CreateLeadRequest 创建线索请求
type CreateLeadRequest struct {
	TypeOfLead           string `json:"type_of_lead"`
	CustomType           string `json:"custom_type"`
	ProjectName          string `json:"project_name"`
	NameOfLead           string `json:"name_of_lead"`
	DesignationOfLead    string `json:"designation_of_lead"`
	CompanyName          string `json:"company_name"`
	PhoneNumberOfLead    string `json:"phone_number_of_lead"`
	EmailOfLead          string `json:"email_of_lead"`
	SourceOfLead         string `json:"source_of_lead"`
	ReferenceName        string `json:"reference_name"`
	ReferencePhoneNumber string `json:"reference_phone_number"`
	Intrested            string `json:"intrested"`
	FollowUpConversation string `json:"follow_up_conversation"`
	Status               string `json:"status"`
}

// Validate 校验创建请求，返回逐字段错误列表
func (r *CreateLeadRequest) Validate() []string {
	var errs []string

	required := []struct {
		name  string
		value string
	}{
		{"type_of_lead", r.TypeOfLead},
		{"project_name", r.ProjectName},
		{"name_of_lead", r.NameOfLead},
		{"designation_of_lead", r.DesignationOfLead},
		{"company_name", r.CompanyName},
		{"phone_number_of_lead", r.PhoneNumberOfLead},
		{"email_of_lead", r.EmailOfLead},
		{"source_of_lead", r.SourceOfLead},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, fmt.Sprintf("%s is required", f.name))
		}
	}

	if r.PhoneNumberOfLead != "" && !leadPhonePattern.MatchString(r.PhoneNumberOfLead) {
		errs = append(errs, "phone_number_of_lead must be a 10 digit number")
	}

	// type_of_lead 为 other 时必须提供 custom_type
	if r.TypeOfLead == LeadTypeOther && strings.TrimSpace(r.CustomType) == "" {
		errs = append(errs, "custom_type is required when 'other' is selected")
	}

	switch r.SourceOfLead {
	case "", LeadSourceInstagram, LeadSourceLinkedin:
	case LeadSourceReferral:
		// referral 来源必须附带引荐人信息
		if strings.TrimSpace(r.ReferenceName) == "" {
			errs = append(errs, "reference_name is required for referral leads")
		}
		if !leadPhonePattern.MatchString(r.ReferencePhoneNumber) {
			errs = append(errs, "reference_phone_number must be a 10 digit number")
		}
	default:
		errs = append(errs, "source_of_lead must be one of instagram, linkedin, referral")
	}

	if r.Intrested != "" && !LeadInterest(r.Intrested).IsValid() {
		errs = append(errs, "intrested must be one of HOT, WARM, COLD, NOT INTERESTED")
	}
	if r.Status != "" && !LeadStatus(r.Status).IsValid() {
		errs = append(errs, "status must be one of Open, Close")
	}

	return errs
}

// ToLead 将请求转换为待存储的线索文档并应用默认值
// type_of_lead 为 other 时存储用户输入的 custom_type
func (r *CreateLeadRequest) ToLead(createdBy primitive.ObjectID, now time.Time) Lead {
	typeOfLead := r.TypeOfLead
	if r.TypeOfLead == LeadTypeOther && r.CustomType != "" {
		typeOfLead = r.CustomType
	}

	intrested := LeadInterest(r.Intrested)
	if intrested == "" {
		intrested = LeadInterestCold
	}

	status := LeadStatus(r.Status)
	if status == "" {
		status = LeadStatusOpen
	}

	return Lead{
		TypeOfLead:           typeOfLead,
		ProjectName:          r.ProjectName,
		NameOfLead:           r.NameOfLead,
		DesignationOfLead:    r.DesignationOfLead,
		CompanyName:          r.CompanyName,
		PhoneNumberOfLead:    r.PhoneNumberOfLead,
		EmailOfLead:          r.EmailOfLead,
		SourceOfLead:         r.SourceOfLead,
		ReferenceName:        r.ReferenceName,
		ReferencePhoneNumber: r.ReferencePhoneNumber,
		Intrested:            intrested,
		FollowUpConversation: r.FollowUpConversation,
		Status:               status,
		CreatedBy:            createdBy,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// UpdateLeadRequest 更新线索请求，只允许修改三个可变字段
type UpdateLeadRequest struct {
	Intrested            string `json:"intrested"`
	FollowUpConversation string `json:"follow_up_conversation"`
	Status               string `json:"status"`
}

// Validate 校验更新请求
func (r *UpdateLeadRequest) Validate() []string {
	var errs []string

	if strings.TrimSpace(r.Intrested) == "" || strings.TrimSpace(r.Status) == "" {
		errs = append(errs, "intrested and status are required fields")
		return errs
	}

	if !LeadInterest(r.Intrested).IsValid() {
		errs = append(errs, "intrested must be one of HOT, WARM, COLD, NOT INTERESTED")
	}
	if !LeadStatus(r.Status).IsValid() {
		errs = append(errs, "status must be one of Open, Close")
	}

	return errs
}

// PerformanceMetrics 管理端业绩统计
type PerformanceMetrics struct {
	TotalLeads         int     `json:"totalLeads"`
	OpenLeads          int     `json:"openLeads"`
	ClosedLeads        int     `json:"closedLeads"`
	HotLeads           int     `json:"hotLeads"`
	WarmLeads          int     `json:"warmLeads"`
	ColdLeads          int     `json:"coldLeads"`
	NotInterestedLeads int     `json:"notInterestedLeads"`
	ConversionRate     float64 `json:"conversionRate"`
	TotalSalesUsers    int     `json:"totalSalesUsers"`
	ActiveSalesUsers   int     `json:"activeSalesUsers"`
	SalesPerformance   float64 `json:"salesPerformance"`
	ThisMonthUsers     int     `json:"thisMonthUsers"`
}

// ComputePerformanceMetrics 计算线索与销售用户的汇总指标
// thisMonthUsers 按服务器当前日历月/年匹配
func ComputePerformanceMetrics(leads []Lead, users []SalesUser, now time.Time) PerformanceMetrics {
	m := PerformanceMetrics{
		TotalLeads:      len(leads),
		TotalSalesUsers: len(users),
	}

	for _, lead := range leads {
		switch lead.Status {
		case LeadStatusOpen:
			m.OpenLeads++
		case LeadStatusClose:
			m.ClosedLeads++
		}

		switch lead.Intrested {
		case LeadInterestHot:
			m.HotLeads++
		case LeadInterestWarm:
			m.WarmLeads++
		case LeadInterestCold:
			m.ColdLeads++
		case LeadInterestNotInterested:
			m.NotInterestedLeads++
		}
	}

	if m.TotalLeads > 0 {
		m.ConversionRate = float64(m.ClosedLeads) / float64(m.TotalLeads) * 100
	}

	for _, user := range users {
		if user.IsActive {
			m.ActiveSalesUsers++
		}
		if user.CreatedAt.Month() == now.Month() && user.CreatedAt.Year() == now.Year() {
			m.ThisMonthUsers++
		}
	}

	if m.TotalSalesUsers > 0 {
		m.SalesPerformance = float64(m.ActiveSalesUsers) / float64(m.TotalSalesUsers) * 100
	}

	return m
}
