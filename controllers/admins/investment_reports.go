package admins

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/K4Y35/krishibazar-backend/database"
	"github.com/K4Y35/krishibazar-backend/models"
	"github.com/K4Y35/krishibazar-backend/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type InvestmentReportRequest struct {
	ProjectID        uint   `json:"project_id"`
	ReportPeriod     string `json:"report_period" validate:"required"`
	ReportDate       string `json:"report_date" validate:"required"` // YYYY-MM-DD
	FinancialSummary string `json:"financial_summary"`
	ProjectMetrics   string `json:"project_metrics"`
	FarmerFeedback   string `json:"farmer_feedback"`
	IssuesChallenges string `json:"issues_challenges"`
	NextSteps        string `json:"next_steps"`
	Photos           string `json:"photos"`
	Videos           string `json:"videos"`
}

type reportRow struct {
	models.InvestmentReport
	ProjectName string `json:"project_name"`
	FarmerName  string `json:"farmer_name"`
}

// jsonField rejects malformed JSON documents before they reach a json column.
func jsonField(raw string) (*string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if !json.Valid([]byte(raw)) {
		return nil, errors.New("must be a valid JSON document")
	}
	return &raw, nil
}

func optionalText(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &raw
}

// POST /v1/admin/investment-reports
//
// Files a periodic accountability report against a project. Financial summary
// and metrics are free-form JSON documents supplied by the reporting admin.
func CreateInvestmentReport(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.GetAdminID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var req InvestmentReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Validation failed", Data: err.Error()})
		return
	}
	if req.ProjectID == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "project_id is required"})
		return
	}
	reportDate, err := time.Parse("2006-01-02", req.ReportDate)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "report_date must be YYYY-MM-DD"})
		return
	}
	financial, err := jsonField(req.FinancialSummary)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "financial_summary " + err.Error()})
		return
	}
	metrics, err := jsonField(req.ProjectMetrics)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "project_metrics " + err.Error()})
		return
	}

	db := database.DB
	var project models.Project
	if err := db.First(&project, req.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Project not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	report := models.InvestmentReport{
		ProjectID:        req.ProjectID,
		ReportPeriod:     strings.TrimSpace(req.ReportPeriod),
		ReportDate:       reportDate,
		FinancialSummary: financial,
		ProjectMetrics:   metrics,
		FarmerFeedback:   optionalText(req.FarmerFeedback),
		IssuesChallenges: optionalText(req.IssuesChallenges),
		NextSteps:        optionalText(req.NextSteps),
		Photos:           optionalText(req.Photos),
		Videos:           optionalText(req.Videos),
		CreatedBy:        adminID,
	}
	if err := db.Create(&report).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create report"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Investment report created", Data: report})
}

// GET /v1/admin/investment-reports?project_id=&report_period=&page=&limit=
func GetInvestmentReports(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.DB
	query := db.Model(&models.InvestmentReport{}).
		Joins("JOIN projects ON investment_reports.project_id = projects.id")

	if projectID := r.URL.Query().Get("project_id"); projectID != "" {
		query = query.Where("investment_reports.project_id = ?", projectID)
	}
	if period := r.URL.Query().Get("report_period"); period != "" {
		query = query.Where("investment_reports.report_period = ?", period)
	}

	var totalRows int64
	if err := query.Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	var rows []reportRow
	err := query.
		Select("investment_reports.*, projects.project_name as project_name, projects.farmer_name as farmer_name").
		Order("investment_reports.report_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"data":       rows,
			"pagination": utils.NewPagination(page, limit, totalRows),
		},
	})
}

// GET /v1/admin/investment-reports/{id}
func GetInvestmentReportDetail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var row reportRow
	err := database.DB.Model(&models.InvestmentReport{}).
		Joins("JOIN projects ON investment_reports.project_id = projects.id").
		Select("investment_reports.*, projects.project_name as project_name, projects.farmer_name as farmer_name").
		Where("investment_reports.id = ?", id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Report not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: row})
}

// PUT /v1/admin/investment-reports/{id}
func UpdateInvestmentReport(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid report ID"})
		return
	}

	var req InvestmentReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}

	db := database.DB
	var report models.InvestmentReport
	if err := db.First(&report, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Report not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	fields := models.ReportUpdateFields{
		FarmerFeedback:   optionalText(req.FarmerFeedback),
		IssuesChallenges: optionalText(req.IssuesChallenges),
		NextSteps:        optionalText(req.NextSteps),
		Photos:           optionalText(req.Photos),
		Videos:           optionalText(req.Videos),
	}
	if period := strings.TrimSpace(req.ReportPeriod); period != "" {
		fields.ReportPeriod = &period
	}
	if req.ReportDate != "" {
		reportDate, err := time.Parse("2006-01-02", req.ReportDate)
		if err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "report_date must be YYYY-MM-DD"})
			return
		}
		fields.ReportDate = &reportDate
	}
	if fields.FinancialSummary, err = jsonField(req.FinancialSummary); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "financial_summary " + err.Error()})
		return
	}
	if fields.ProjectMetrics, err = jsonField(req.ProjectMetrics); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "project_metrics " + err.Error()})
		return
	}

	changes := fields.Changes()
	if len(changes) == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "No fields to update"})
		return
	}
	if err := db.Model(&report).Updates(changes).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to update report"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Investment report updated", Data: report})
}

// DELETE /v1/admin/investment-reports/{id}
func DeleteInvestmentReport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var report models.InvestmentReport
	if err := database.DB.First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Report not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	if err := database.DB.Delete(&report).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to delete report"})
		return
	}
	_ = utils.DeleteMediaList(report.Photos)
	_ = utils.DeleteMediaList(report.Videos)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Investment report deleted"})
}
