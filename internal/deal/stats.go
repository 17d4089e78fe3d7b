package deal

import (
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/KromaEnergia/api-crm/internal/apperrors"
	"github.com/KromaEnergia/api-crm/internal/auth"
	"github.com/KromaEnergia/api-crm/internal/models"
	"github.com/KromaEnergia/api-crm/internal/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StageStats struct {
	Stage              string   `json:"stage"`
	Count              int      `json:"count"`
	Value              string   `json:"value"`
	AverageDaysInStage *float64 `json:"average_days_in_stage"`
}

type DealStats struct {
	TotalDeals            int          `json:"total_deals"`
	TotalPipelineValue    string       `json:"total_pipeline_value"`
	WeightedPipelineValue string       `json:"weighted_pipeline_value"`
	AverageDealSize       string       `json:"average_deal_size"`
	WonDeals              int          `json:"won_deals"`
	LostDeals             int          `json:"lost_deals"`
	AverageDaysInStage    *float64     `json:"average_days_in_stage"`
	ByStage               []StageStats `json:"by_stage"`
}

type PaymentStats struct {
	TotalCount    int    `json:"total_count"`
	TotalAmount   string `json:"total_amount"`
	PendingCount  int    `json:"pending_count"`
	PendingAmount string `json:"pending_amount"`
	PaidCount     int    `json:"paid_count"`
	PaidAmount    string `json:"paid_amount"`
	OverdueCount  int    `json:"overdue_count"`
	OverdueAmount string `json:"overdue_amount"`
}

type ClientDealStats struct {
	ClientID   uint   `json:"client_id"`
	Company    string `json:"company"`
	DealCount  int    `json:"deal_count"`
	TotalValue string `json:"total_value"`
}

type ClientStats struct {
	TotalClients     int64             `json:"total_clients"`
	ClientsWithDeals int               `json:"clients_with_deals"`
	Clients          []ClientDealStats `json:"clients"`
}

// GET /stats/deals (token obrigatório, mesmo escopo da listagem)
func (h *Handler) DealStats(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		utils.WriteError(w, apperrors.Unauthorized("Missing or invalid token"))
		return
	}
	db := h.DB.WithContext(r.Context())
	scope := auth.DealScope(p)

	deals, err := h.Repository.List(db, scope)
	if err != nil {
		utils.Fail(w, h.Logger, moduleName, "DealStats", apperrors.Persistence("Failed to load deal stats", err))
		return
	}
	var histories []models.StageHistory
	if err := scopedByDeal(db, &models.StageHistory{}, scope).Find(&histories).Error; err != nil {
		utils.Fail(w, h.Logger, moduleName, "DealStats", apperrors.Persistence("Failed to load deal stats", err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, computeDealStats(deals, histories, h.Now()))
}

// GET /stats/payments (token obrigatório, mesmo escopo da listagem)
func (h *Handler) PaymentStats(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		utils.WriteError(w, apperrors.Unauthorized("Missing or invalid token"))
		return
	}
	var payments []models.PaymentSchedule
	q := scopedByDeal(h.DB.WithContext(r.Context()), &models.PaymentSchedule{}, auth.DealScope(p))
	if err := q.Find(&payments).Error; err != nil {
		utils.Fail(w, h.Logger, moduleName, "PaymentStats", apperrors.Persistence("Failed to load payment stats", err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, computePaymentStats(payments, models.NewDate(h.Now())))
}

// GET /stats/clients (token obrigatório). O total conta todos os clientes;
// os números por cliente só consideram deals no escopo do chamador.
func (h *Handler) ClientStats(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		utils.WriteError(w, apperrors.Unauthorized("Missing or invalid token"))
		return
	}
	db := h.DB.WithContext(r.Context())

	var total int64
	if err := db.Model(&models.Client{}).Count(&total).Error; err != nil {
		utils.Fail(w, h.Logger, moduleName, "ClientStats", apperrors.Persistence("Failed to load client stats", err))
		return
	}
	deals, err := h.Repository.List(db, auth.DealScope(p))
	if err != nil {
		utils.Fail(w, h.Logger, moduleName, "ClientStats", apperrors.Persistence("Failed to load client stats", err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, computeClientStats(total, deals))
}

// scopedByDeal filtra uma tabela filha de deals pelo vendedor do deal.
func scopedByDeal(db *gorm.DB, model any, salesRepID *uint) *gorm.DB {
	q := db.Model(model)
	if salesRepID != nil {
		q = q.Where("deal_id IN (?)", db.Model(&models.Deal{}).Select("id").Where("sales_rep_id = ?", *salesRepID))
	}
	return q
}

func computeDealStats(deals []models.Deal, histories []models.StageHistory, now time.Time) DealStats {
	stats := DealStats{TotalDeals: len(deals), ByStage: []StageStats{}}

	total := decimal.Zero
	weighted := decimal.Zero
	byStage := map[string]*StageStats{}
	stageValue := map[string]decimal.Decimal{}
	for _, d := range deals {
		total = total.Add(d.EstimatedValue)
		weighted = weighted.Add(d.EstimatedValue.Mul(decimal.NewFromFloat(d.Probability)))
		if d.WonOn != nil {
			stats.WonDeals++
		}
		if d.LostOn != nil {
			stats.LostDeals++
		}
		s, ok := byStage[d.Stage]
		if !ok {
			s = &StageStats{Stage: d.Stage}
			byStage[d.Stage] = s
		}
		s.Count++
		stageValue[d.Stage] = stageValue[d.Stage].Add(d.EstimatedValue)
	}

	stats.TotalPipelineValue = total.StringFixed(2)
	stats.WeightedPipelineValue = weighted.StringFixed(2)
	stats.AverageDealSize = decimal.Zero.StringFixed(2)
	if len(deals) > 0 {
		stats.AverageDealSize = total.Div(decimal.NewFromInt(int64(len(deals)))).StringFixed(2)
	}

	// dias por linha do histórico; linha aberta conta até agora, mínimo 1 dia
	var allDays float64
	stageDays := map[string][]float64{}
	for _, hst := range histories {
		days := daysInStage(hst, now)
		allDays += days
		stageDays[hst.Stage] = append(stageDays[hst.Stage], days)
	}
	if len(histories) > 0 {
		stats.AverageDaysInStage = roundedAverage(allDays, len(histories))
	}

	for stage, days := range stageDays {
		if _, ok := byStage[stage]; !ok {
			byStage[stage] = &StageStats{Stage: stage}
		}
		var sum float64
		for _, d := range days {
			sum += d
		}
		byStage[stage].AverageDaysInStage = roundedAverage(sum, len(days))
	}
	for stage, s := range byStage {
		s.Value = stageValue[stage].StringFixed(2)
		stats.ByStage = append(stats.ByStage, *s)
	}
	sort.Slice(stats.ByStage, func(i, j int) bool { return stats.ByStage[i].Stage < stats.ByStage[j].Stage })
	return stats
}

func daysInStage(h models.StageHistory, now time.Time) float64 {
	end := now
	if h.ExitedAt != nil {
		end = *h.ExitedAt
	}
	return math.Max(1, math.Round(end.Sub(h.EnteredAt).Hours()/24))
}

func roundedAverage(sum float64, n int) *float64 {
	v := math.Round(sum/float64(n)*10) / 10
	return &v
}

func computePaymentStats(payments []models.PaymentSchedule, today models.Date) PaymentStats {
	var stats PaymentStats
	total, pending, paid, overdue := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for _, p := range payments {
		stats.TotalCount++
		total = total.Add(p.AmountDue)
		switch p.Status {
		case models.PaymentPaid:
			stats.PaidCount++
			paid = paid.Add(p.AmountDue)
		case models.PaymentPending:
			stats.PendingCount++
			pending = pending.Add(p.AmountDue)
			if p.DueDate.Before(today.Time) {
				stats.OverdueCount++
				overdue = overdue.Add(p.AmountDue)
			}
		}
	}
	stats.TotalAmount = total.StringFixed(2)
	stats.PendingAmount = pending.StringFixed(2)
	stats.PaidAmount = paid.StringFixed(2)
	stats.OverdueAmount = overdue.StringFixed(2)
	return stats
}

// computeClientStats agrupa os deals por cliente, maior valor primeiro.
func computeClientStats(total int64, deals []models.Deal) ClientStats {
	type acc struct {
		company string
		count   int
		value   decimal.Decimal
	}
	byClient := map[uint]*acc{}
	for _, d := range deals {
		a, ok := byClient[d.ClientID]
		if !ok {
			a = &acc{}
			if d.Client != nil {
				a.company = d.Client.Company
			}
			byClient[d.ClientID] = a
		}
		a.count++
		a.value = a.value.Add(d.EstimatedValue)
	}

	stats := ClientStats{TotalClients: total, ClientsWithDeals: len(byClient), Clients: []ClientDealStats{}}
	values := map[uint]decimal.Decimal{}
	for id, a := range byClient {
		values[id] = a.value
		stats.Clients = append(stats.Clients, ClientDealStats{
			ClientID:   id,
			Company:    a.company,
			DealCount:  a.count,
			TotalValue: a.value.StringFixed(2),
		})
	}
	sort.Slice(stats.Clients, func(i, j int) bool {
		a, b := stats.Clients[i], stats.Clients[j]
		if cmp := values[a.ClientID].Cmp(values[b.ClientID]); cmp != 0 {
			return cmp > 0
		}
		return a.ClientID < b.ClientID
	})
	return stats
}
