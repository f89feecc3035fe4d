package scoring

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tilescore/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	table model.RankBonusTable
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.table = model.RankBonusTable{20, 10, -10, -20}
}

// Helper to build seat entries in seat order
func entries(pairs ...any) [model.SeatCount]model.SeatEntry {
	var out [model.SeatCount]model.SeatEntry
	for i := 0; i < model.SeatCount; i++ {
		out[i] = model.SeatEntry{
			PlayerID: model.PlayerID(pairs[i*2].(string)),
			RawScore: pairs[i*2+1].(int),
		}
	}
	return out
}

func (s *ServiceSuite) TestBase() {
	s.Equal(0.0, Base(30000))
	s.Equal(15.0, Base(45000))
	s.Equal(-10.0, Base(20000))
	s.Equal(0.5, Base(30500)) // Fractional bases are preserved
	s.Equal(-30.3, Base(-300))
}

func (s *ServiceSuite) TestDistinctScores() {
	result := ComputeRoundDeltas(entries("A", 45000, "B", 33000, "C", 25000, "D", 20000), s.table)

	s.Equal(model.PlayerID("A"), result[0].PlayerID)
	s.Equal(0, result[0].Rank)
	s.Equal(1, result[1].Rank)
	s.Equal(2, result[2].Rank)
	s.Equal(3, result[3].Rank)

	s.Equal(15.0, result[0].Base)
	s.Equal(3.0, result[1].Base)
	s.Equal(-5.0, result[2].Base)
	s.Equal(-10.0, result[3].Base)

	s.Equal(35.0, result[0].Delta)
	s.Equal(13.0, result[1].Delta)
	s.Equal(-15.0, result[2].Delta)
	s.Equal(-30.0, result[3].Delta)
}

func (s *ServiceSuite) TestTieBrokenBySeatOrder() {
	result := ComputeRoundDeltas(entries("E", 30000, "F", 30000, "G", 28000, "H", 12000), s.table)

	s.Equal(0, result[0].Rank)
	s.Equal(1, result[1].Rank)
	s.Equal(20.0, result[0].Delta)
	s.Equal(10.0, result[1].Delta)
	s.Equal(-12.0, result[2].Delta) // -2 + -10
	s.Equal(-38.0, result[3].Delta) // -18 + -20
}

func (s *ServiceSuite) TestTieIgnoresPlayerID() {
	// "Z" sorts after "A" but sits earlier, so it ranks higher
	result := ComputeRoundDeltas(entries("Z", 25000, "A", 25000, "M", 25000, "B", 25000), s.table)

	s.Equal(0, result[0].Rank)
	s.Equal(1, result[1].Rank)
	s.Equal(2, result[2].Rank)
	s.Equal(3, result[3].Rank)
}

func (s *ServiceSuite) TestOutputKeepsSeatOrder() {
	result := ComputeRoundDeltas(entries("A", 10000, "B", 20000, "C", 40000, "D", 30000), s.table)

	s.Equal(model.PlayerID("A"), result[0].PlayerID)
	s.Equal(model.PlayerID("B"), result[1].PlayerID)
	s.Equal(model.PlayerID("C"), result[2].PlayerID)
	s.Equal(model.PlayerID("D"), result[3].PlayerID)

	s.Equal(3, result[0].Rank)
	s.Equal(2, result[1].Rank)
	s.Equal(0, result[2].Rank)
	s.Equal(1, result[3].Rank)
	s.Equal(10000, result[0].Raw)
}

func (s *ServiceSuite) TestUnorderedBonusTable() {
	inverted := model.RankBonusTable{-20, -10, 10, 20}
	result := ComputeRoundDeltas(entries("A", 45000, "B", 33000, "C", 25000, "D", 20000), inverted)

	s.Equal(-5.0, result[0].Delta)
	s.Equal(10.0, result[3].Delta)
}

func (s *ServiceSuite) TestIsDeterministic() {
	in := entries("A", 31000, "B", 31000, "C", 19000, "D", 19000)
	s.Equal(ComputeRoundDeltas(in, s.table), ComputeRoundDeltas(in, s.table))
}

func (s *ServiceSuite) TestDeltaSumEqualsBaseSumPlusBonusSum() {
	faker := gofakeit.New(42)

	for i := 0; i < 500; i++ {
		table := model.RankBonusTable{
			faker.Float64Range(-50, 50),
			faker.Float64Range(-50, 50),
			faker.Float64Range(-50, 50),
			faker.Float64Range(-50, 50),
		}
		var in [model.SeatCount]model.SeatEntry
		var baseSum float64
		for seat := range in {
			// Narrow range forces frequent ties
			raw := faker.Number(-2, 6) * 10000
			if faker.Bool() {
				raw = faker.Number(-50000, 150000)
			}
			in[seat] = model.SeatEntry{PlayerID: model.PlayerID(faker.UUID()), RawScore: raw}
			baseSum += Base(raw)
		}

		result := ComputeRoundDeltas(in, table)

		var deltaSum float64
		seenRanks := make(map[int]bool)
		for _, b := range result {
			deltaSum += b.Delta
			seenRanks[b.Rank] = true
		}
		s.InDelta(baseSum+table.Sum(), deltaSum, 1e-9)
		s.Len(seenRanks, model.SeatCount, "every rank assigned exactly once")
	}
}

func (s *ServiceSuite) TestRankOrderIsStable() {
	order := RankOrder(entries("A", 100, "B", 300, "C", 300, "D", 100))
	s.Equal([model.SeatCount]int{1, 2, 0, 3}, order)
}
