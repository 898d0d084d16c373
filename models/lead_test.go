package models

import (
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validCreateRequest() CreateLeadRequest {
	return CreateLeadRequest{
		TypeOfLead:        "corporate",
		ProjectName:       "Website Revamp",
		NameOfLead:        "Asha Rao",
		DesignationOfLead: "CTO",
		CompanyName:       "Acme",
		PhoneNumberOfLead: "9998887777",
		EmailOfLead:       "asha@acme.com",
		SourceOfLead:      LeadSourceLinkedin,
	}
}

func TestCreateLeadRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateLeadRequest)
		wantErr string // 为空表示期望通过
	}{
		{
			name:   "valid non-referral lead without reference fields",
			mutate: func(r *CreateLeadRequest) {},
		},
		{
			name: "valid instagram lead",
			mutate: func(r *CreateLeadRequest) {
				r.SourceOfLead = LeadSourceInstagram
			},
		},
		{
			name: "valid referral lead",
			mutate: func(r *CreateLeadRequest) {
				r.SourceOfLead = LeadSourceReferral
				r.ReferenceName = "Ravi"
				r.ReferencePhoneNumber = "8887776666"
			},
		},
		{
			name:    "missing project name",
			mutate:  func(r *CreateLeadRequest) { r.ProjectName = "" },
			wantErr: "project_name is required",
		},
		{
			name:    "missing company name",
			mutate:  func(r *CreateLeadRequest) { r.CompanyName = "  " },
			wantErr: "company_name is required",
		},
		{
			name:    "phone too short",
			mutate:  func(r *CreateLeadRequest) { r.PhoneNumberOfLead = "12345" },
			wantErr: "phone_number_of_lead must be a 10 digit number",
		},
		{
			name:    "phone with letters",
			mutate:  func(r *CreateLeadRequest) { r.PhoneNumberOfLead = "99988877ab" },
			wantErr: "phone_number_of_lead must be a 10 digit number",
		},
		{
			name: "referral without reference name",
			mutate: func(r *CreateLeadRequest) {
				r.SourceOfLead = LeadSourceReferral
				r.ReferencePhoneNumber = "8887776666"
			},
			wantErr: "reference_name is required for referral leads",
		},
		{
			name: "referral with invalid reference phone",
			mutate: func(r *CreateLeadRequest) {
				r.SourceOfLead = LeadSourceReferral
				r.ReferenceName = "Ravi"
				r.ReferencePhoneNumber = "88877"
			},
			wantErr: "reference_phone_number must be a 10 digit number",
		},
		{
			name:    "unknown source",
			mutate:  func(r *CreateLeadRequest) { r.SourceOfLead = "twitter" },
			wantErr: "source_of_lead must be one of instagram, linkedin, referral",
		},
		{
			name: "other type without custom type",
			mutate: func(r *CreateLeadRequest) {
				r.TypeOfLead = LeadTypeOther
			},
			wantErr: "custom_type is required when 'other' is selected",
		},
		{
			name: "other type with custom type",
			mutate: func(r *CreateLeadRequest) {
				r.TypeOfLead = LeadTypeOther
				r.CustomType = "Hackathon"
			},
		},
		{
			name:    "invalid interest value",
			mutate:  func(r *CreateLeadRequest) { r.Intrested = "LUKEWARM" },
			wantErr: "intrested must be one of HOT, WARM, COLD, NOT INTERESTED",
		},
		{
			name:    "invalid status value",
			mutate:  func(r *CreateLeadRequest) { r.Status = "Pending" },
			wantErr: "status must be one of Open, Close",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)
			errs := req.Validate()

			if tt.wantErr == "" {
				if len(errs) != 0 {
					t.Fatalf("expected no errors, got %v", errs)
				}
				return
			}

			found := false
			for _, e := range errs {
				if strings.Contains(e, tt.wantErr) {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, errs)
			}
		})
	}
}

func TestCreateLeadRequestValidateItemizesAllErrors(t *testing.T) {
	req := CreateLeadRequest{}
	errs := req.Validate()
	if len(errs) < 8 {
		t.Fatalf("empty request should report every required field, got %d errors: %v", len(errs), errs)
	}
}

func TestToLeadDefaults(t *testing.T) {
	owner := primitive.NewObjectID()
	now := time.Now()

	req := validCreateRequest()
	lead := req.ToLead(owner, now)

	if lead.Intrested != LeadInterestCold {
		t.Errorf("intrested default = %q, want COLD", lead.Intrested)
	}
	if lead.Status != LeadStatusOpen {
		t.Errorf("status default = %q, want Open", lead.Status)
	}
	if lead.CreatedBy != owner {
		t.Errorf("created_by = %v, want %v", lead.CreatedBy, owner)
	}
	if !lead.CreatedAt.Equal(now) || !lead.UpdatedAt.Equal(now) {
		t.Error("created_at/updated_at should both equal creation time")
	}
}

func TestToLeadOtherTypeUsesCustomType(t *testing.T) {
	req := validCreateRequest()
	req.TypeOfLead = LeadTypeOther
	req.CustomType = "Hackathon"

	lead := req.ToLead(primitive.NewObjectID(), time.Now())
	if lead.TypeOfLead != "Hackathon" {
		t.Fatalf("type_of_lead = %q, want stored custom type", lead.TypeOfLead)
	}
}

func TestUpdateLeadRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     UpdateLeadRequest
		wantErr string
	}{
		{
			name: "valid",
			req:  UpdateLeadRequest{Intrested: "HOT", Status: "Close"},
		},
		{
			name: "valid with follow up",
			req:  UpdateLeadRequest{Intrested: "NOT INTERESTED", Status: "Open", FollowUpConversation: "called twice"},
		},
		{
			name:    "missing intrested",
			req:     UpdateLeadRequest{Status: "Open"},
			wantErr: "intrested and status are required fields",
		},
		{
			name:    "missing status",
			req:     UpdateLeadRequest{Intrested: "HOT"},
			wantErr: "intrested and status are required fields",
		},
		{
			name:    "bad interest enum",
			req:     UpdateLeadRequest{Intrested: "hot", Status: "Open"},
			wantErr: "intrested must be one of",
		},
		{
			name:    "bad status enum",
			req:     UpdateLeadRequest{Intrested: "HOT", Status: "closed"},
			wantErr: "status must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.req.Validate()
			if tt.wantErr == "" {
				if len(errs) != 0 {
					t.Fatalf("expected no errors, got %v", errs)
				}
				return
			}
			if len(errs) == 0 || !strings.Contains(errs[0], tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, errs)
			}
		})
	}
}

func TestComputePerformanceMetrics(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	leads := []Lead{
		{Status: LeadStatusOpen, Intrested: LeadInterestHot},
		{Status: LeadStatusOpen, Intrested: LeadInterestWarm},
		{Status: LeadStatusClose, Intrested: LeadInterestCold},
		{Status: LeadStatusClose, Intrested: LeadInterestNotInterested},
	}
	users := []SalesUser{
		{IsActive: true, CreatedAt: now.AddDate(0, 0, -1)},  // 本月
		{IsActive: false, CreatedAt: now.AddDate(0, -2, 0)}, // 两个月前
		// 去年同月，不计入本月新增
		{IsActive: true, CreatedAt: time.Date(2025, time.September, 5, 0, 0, 0, 0, time.UTC)},
	}

	m := ComputePerformanceMetrics(leads, users, now)

	if m.TotalLeads != 4 || m.OpenLeads != 2 || m.ClosedLeads != 2 {
		t.Errorf("lead counts = %d/%d/%d, want 4/2/2", m.TotalLeads, m.OpenLeads, m.ClosedLeads)
	}
	if m.HotLeads != 1 || m.WarmLeads != 1 || m.ColdLeads != 1 || m.NotInterestedLeads != 1 {
		t.Error("interest bucket counts should each be 1")
	}
	if m.ConversionRate != 50 {
		t.Errorf("conversionRate = %v, want 50", m.ConversionRate)
	}
	if m.TotalSalesUsers != 3 || m.ActiveSalesUsers != 2 {
		t.Errorf("user counts = %d/%d, want 3/2", m.TotalSalesUsers, m.ActiveSalesUsers)
	}
	if m.ThisMonthUsers != 1 {
		t.Errorf("thisMonthUsers = %d, want 1 (calendar month and year must both match)", m.ThisMonthUsers)
	}
}

func TestComputePerformanceMetricsEmpty(t *testing.T) {
	m := ComputePerformanceMetrics(nil, nil, time.Now())
	if m.ConversionRate != 0 || m.SalesPerformance != 0 {
		t.Fatal("rates must be 0 when there is no data, not NaN")
	}
}
