package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratinto/agri-credit-backend/internal/domain/model"
	"github.com/ratinto/agri-credit-backend/internal/domain/service"
	"github.com/ratinto/agri-credit-backend/internal/domain/valueobject"
)

func farmerWithScore(score int) model.Farmer {
	return model.Farmer{
		ID:         "FRM000001",
		FullName:   "Ramesh Kumar",
		TrustScore: score,
		RiskLevel:  valueobject.RiskLevelForScore(score),
	}
}

func farmsOfSize(acres int64) []model.Farm {
	return []model.Farm{{ID: "FARM001", FarmerID: "FRM000001", LandSizeAcres: decimal.NewFromInt(acres)}}
}

func offerIDs(offers []service.LoanOffer) []string {
	ids := make([]string, 0, len(offers))
	for _, o := range offers {
		ids = append(ids, o.OfferID)
	}
	return ids
}

func TestGenerateOffers(t *testing.T) {
	t.Run("low score qualifies only for the NBFC product", func(t *testing.T) {
		sheet := service.GenerateOffers(farmerWithScore(35), farmsOfSize(2))

		require.Len(t, sheet.Offers, 1)
		offer := sheet.Offers[0]
		assert.Equal(t, "NBFC-001", offer.OfferID)
		assert.True(t, decimal.RequireFromString("16.5").Equal(offer.InterestRatePct))
		assert.False(t, offer.Recommended)
		// 2 acres at 60,000 per acre, below the 3 lakh ceiling.
		assert.True(t, decimal.NewFromInt(120_000).Equal(offer.LoanAmountMax))
	})

	t.Run("mid score lists four products sorted by recommendation then rate", func(t *testing.T) {
		sheet := service.GenerateOffers(farmerWithScore(60), farmsOfSize(4))

		assert.Equal(t, []string{"KCC-001", "COOP-001", "RRB-001", "NBFC-001"}, offerIDs(sheet.Offers))
		assert.True(t, sheet.Offers[0].Recommended)
		// Score 60 earns the NBFC's better rate but loses its recommendation band.
		nbfc := sheet.Offers[3]
		assert.True(t, decimal.RequireFromString("14.5").Equal(nbfc.InterestRatePct))
		assert.False(t, nbfc.Recommended)
	})

	t.Run("high score unlocks commercial lending and better rates", func(t *testing.T) {
		sheet := service.GenerateOffers(farmerWithScore(85), farmsOfSize(10))

		assert.Equal(t, []string{"KCC-001", "RRB-001", "COMM-001", "COOP-001"}, offerIDs(sheet.Offers))
		assert.NotContains(t, offerIDs(sheet.Offers), "NBFC-001")

		for _, offer := range sheet.Offers {
			switch offer.OfferID {
			case "COOP-001":
				assert.True(t, decimal.RequireFromString("9.5").Equal(offer.InterestRatePct))
				assert.False(t, offer.Recommended, "COOP targets the mid band only")
			case "COMM-001":
				assert.True(t, decimal.RequireFromString("10.5").Equal(offer.InterestRatePct))
				assert.True(t, offer.Recommended)
			case "KCC-001":
				// 10 acres at 50,000 per acre hits the 3 lakh ceiling.
				assert.True(t, decimal.NewFromInt(300_000).Equal(offer.LoanAmountMax))
			}
		}
	})

	t.Run("unscored farmer gets improvement tips instead of offers", func(t *testing.T) {
		sheet := service.GenerateOffers(farmerWithScore(20), farmsOfSize(3))

		assert.Empty(t, sheet.Offers)
		assert.NotEmpty(t, sheet.ImprovementTips)
	})

	t.Run("zero registered land caps every offer at zero", func(t *testing.T) {
		sheet := service.GenerateOffers(farmerWithScore(60), nil)

		require.NotEmpty(t, sheet.Offers)
		assert.True(t, sheet.TotalLandAcres.IsZero())
		for _, offer := range sheet.Offers {
			assert.True(t, offer.LoanAmountMax.IsZero(), "offer %s", offer.OfferID)
		}
	})

	t.Run("sheet echoes the farmer identity", func(t *testing.T) {
		sheet := service.GenerateOffers(farmerWithScore(60), farmsOfSize(4))
		assert.Equal(t, "FRM000001", sheet.FarmerID)
		assert.Equal(t, "Ramesh Kumar", sheet.FarmerName)
		assert.Equal(t, 60, sheet.TrustScore)
		assert.NotEmpty(t, sheet.Note)
	})
}
