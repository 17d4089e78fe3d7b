package deal

import (
	"testing"
	"time"

	"github.com/KromaEnergia/api-crm/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDealStats(t *testing.T) {
	now := time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)
	won := models.NewDate(now)
	deals := []models.Deal{
		{ID: 1, Stage: "Lead", EstimatedValue: decimal.RequireFromString("1000"), Probability: 0.2},
		{ID: 2, Stage: "Lead", EstimatedValue: decimal.RequireFromString("500"), Probability: 0.5},
		{ID: 3, Stage: "Contract", EstimatedValue: decimal.RequireFromString("300"), Probability: 1, WonOn: &won},
	}
	exited := now.AddDate(0, 0, -6)
	histories := []models.StageHistory{
		{DealID: 1, Stage: "Lead", EnteredAt: now.AddDate(0, 0, -10), ExitedAt: &exited}, // 4 dias
		{DealID: 1, Stage: "Contract", EnteredAt: exited},                                 // 6 dias, aberta
		{DealID: 2, Stage: "Lead", EnteredAt: now.Add(-2 * time.Hour)},                    // mínimo 1 dia
	}

	stats := computeDealStats(deals, histories, now)

	assert.Equal(t, 3, stats.TotalDeals)
	assert.Equal(t, "1800.00", stats.TotalPipelineValue)
	assert.Equal(t, "750.00", stats.WeightedPipelineValue)
	assert.Equal(t, "600.00", stats.AverageDealSize)
	assert.Equal(t, 1, stats.WonDeals)
	assert.Equal(t, 0, stats.LostDeals)
	require.NotNil(t, stats.AverageDaysInStage)
	assert.InDelta(t, 3.7, *stats.AverageDaysInStage, 0.001)

	require.Len(t, stats.ByStage, 2)
	assert.Equal(t, "Contract", stats.ByStage[0].Stage)
	assert.Equal(t, 1, stats.ByStage[0].Count)
	assert.Equal(t, "300.00", stats.ByStage[0].Value)
	assert.InDelta(t, 6.0, *stats.ByStage[0].AverageDaysInStage, 0.001)
	assert.Equal(t, "Lead", stats.ByStage[1].Stage)
	assert.Equal(t, 2, stats.ByStage[1].Count)
	assert.Equal(t, "1500.00", stats.ByStage[1].Value)
	assert.InDelta(t, 2.5, *stats.ByStage[1].AverageDaysInStage, 0.001)
}

func TestComputeDealStatsEmpty(t *testing.T) {
	stats := computeDealStats(nil, nil, time.Now())
	assert.Equal(t, 0, stats.TotalDeals)
	assert.Equal(t, "0.00", stats.AverageDealSize)
	assert.Nil(t, stats.AverageDaysInStage)
	assert.Empty(t, stats.ByStage)
}

func TestComputePaymentStats(t *testing.T) {
	today := models.NewDate(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC))
	paidOn := today
	payments := []models.PaymentSchedule{
		{AmountDue: decimal.RequireFromString("100"), Status: models.PaymentPaid, DueDate: models.NewDate(today.AddDate(0, 0, -3)), PaidOn: &paidOn},
		{AmountDue: decimal.RequireFromString("250.50"), Status: models.PaymentPending, DueDate: models.NewDate(today.AddDate(0, 0, -1))},
		{AmountDue: decimal.RequireFromString("40"), Status: models.PaymentPending, DueDate: today},
	}

	stats := computePaymentStats(payments, today)

	assert.Equal(t, 3, stats.TotalCount)
	assert.Equal(t, "390.50", stats.TotalAmount)
	assert.Equal(t, 1, stats.PaidCount)
	assert.Equal(t, "100.00", stats.PaidAmount)
	assert.Equal(t, 2, stats.PendingCount)
	assert.Equal(t, "290.50", stats.PendingAmount)
	assert.Equal(t, 1, stats.OverdueCount)
	assert.Equal(t, "250.50", stats.OverdueAmount)
}

func TestComputeClientStats(t *testing.T) {
	acme := &models.Client{ID: 1, Company: "Acme"}
	globex := &models.Client{ID: 2, Company: "Globex"}
	initech := &models.Client{ID: 3, Company: "Initech"}
	deals := []models.Deal{
		{ClientID: 1, Client: acme, EstimatedValue: decimal.RequireFromString("100")},
		{ClientID: 2, Client: globex, EstimatedValue: decimal.RequireFromString("300")},
		{ClientID: 1, Client: acme, EstimatedValue: decimal.RequireFromString("200.25")},
		{ClientID: 3, Client: initech, EstimatedValue: decimal.RequireFromString("300")},
	}

	stats := computeClientStats(5, deals)

	assert.Equal(t, int64(5), stats.TotalClients)
	assert.Equal(t, 3, stats.ClientsWithDeals)
	require.Len(t, stats.Clients, 3)
	assert.Equal(t, ClientDealStats{ClientID: 1, Company: "Acme", DealCount: 2, TotalValue: "300.25"}, stats.Clients[0])
	assert.Equal(t, uint(2), stats.Clients[1].ClientID)
	assert.Equal(t, uint(3), stats.Clients[2].ClientID)

	empty := computeClientStats(0, nil)
	assert.Equal(t, 0, empty.ClientsWithDeals)
	assert.NotNil(t, empty.Clients)
}
