package cli

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tilescore/internal/api"
	"github.com/mcoot/tilescore/internal/api/request"
	"github.com/mcoot/tilescore/internal/api/response"
	"github.com/mcoot/tilescore/internal/factory"
	"github.com/mcoot/tilescore/internal/services/auth"
)

type CLISuite struct {
	suite.Suite
	server    *httptest.Server
	tokenFile string
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	s.server = s.newServer()
	s.tokenFile = filepath.Join(s.T().TempDir(), "token")
}

func (s *CLISuite) TearDownTest() {
	s.server.Close()
}

func (s *CLISuite) newServer(opts ...factory.TestOption) *httptest.Server {
	app := factory.NewTestApp(opts...)
	return httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:      app.Logger,
		Controller:  app.Controller,
		AuthService: app.AuthService,
	}))
}

// run executes the CLI with JSON output and returns stdout
func (s *CLISuite) run(args ...string) (string, error) {
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--server", s.server.URL, "--token-file", s.tokenFile, "-o", "json"}, args...))
	err := root.Execute()
	return stdout.String(), err
}

func (s *CLISuite) mustRun(v any, args ...string) {
	out, err := s.run(args...)
	s.Require().NoError(err, out)
	if v != nil {
		s.Require().NoError(json.Unmarshal([]byte(out), v), out)
	}
}

func (s *CLISuite) addPlayers(names ...string) []string {
	ids := make([]string, len(names))
	for i, name := range names {
		var p response.Player
		s.mustRun(&p, "player", "add", "--name", name)
		ids[i] = p.ID
	}
	return ids
}

func (s *CLISuite) TestParseSeat() {
	seat, err := parseSeat("p_1=-3000")
	s.Require().NoError(err)
	s.Equal(request.NewSeatRequest("p_1", -3000), seat)

	_, err = parseSeat("p_1")
	s.Error(err)
	_, err = parseSeat("p_1=lots")
	s.Error(err)
	_, err = parseSeat("=100")
	s.Error(err)
}

func (s *CLISuite) TestParseSeatRejectsNonFinite() {
	for _, arg := range []string{"p_1=NaN", "p_1=Inf", "p_1=-inf", "p_1=+Infinity"} {
		_, err := parseSeat(arg)
		s.Require().Error(err, arg)
		s.Contains(err.Error(), "finite", arg)
	}
}

func (s *CLISuite) TestParseGroup() {
	group, err := parseGroup("Red: p_1, p_2")
	s.Require().NoError(err)
	s.Equal("Red", group.Name)
	s.Equal([]string{"p_1", "p_2"}, group.Members)

	_, err = parseGroup("Red")
	s.Error(err)
}

func (s *CLISuite) TestHealth() {
	var result HealthResult
	s.mustRun(&result, "health")
	s.Equal("ok", result.Status)
	s.NotEmpty(result.Latency)
}

func (s *CLISuite) TestRoundAndBoard() {
	ids := s.addPlayers("Ann", "Bo", "Cy", "Di")

	var round response.Round
	s.mustRun(&round, "round", "submit",
		"--seat", ids[0]+"=45000", "--seat", ids[1]+"=33000",
		"--seat", ids[2]+"=25000", "--seat", ids[3]+"=20000")
	s.Equal(35.0, round.Seats[0].Delta)

	var board response.PlayerBoard
	s.mustRun(&board, "board", "players")
	s.Require().Len(board.Entries, 4)
	s.Equal("Ann", board.Entries[0].Name)
}

func (s *CLISuite) TestSubmitRejectedRound() {
	ids := s.addPlayers("Ann", "Bo", "Cy")

	_, err := s.run("round", "submit", "--seat", ids[0]+"=1", "--seat", ids[1]+"=2", "--seat", ids[2]+"=3")
	s.Require().Error(err)
	s.Contains(err.Error(), "seat_count")
}

func (s *CLISuite) TestSettings() {
	s.addPlayers("Ann", "Bo", "Cy", "Di")

	var t response.Tournament
	s.mustRun(&t, "settings", "bonus", "--values=30,10,-10,-30")
	s.Equal([]float64{30, 10, -10, -30}, t.RankBonus)

	s.mustRun(&t, "settings", "top-k", "3")
	s.Equal(3, t.TopK)

	_, err := s.run("settings", "top-k", "many")
	s.Error(err)
}

func (s *CLISuite) TestGroupingAndReset() {
	ids := s.addPlayers("Ann", "Bo", "Cy", "Di")

	var t response.Tournament
	s.mustRun(&t, "grouping", "set",
		"--group", "Red:"+ids[0]+","+ids[1],
		"--group", "Blue:"+ids[2]+","+ids[3])
	s.True(t.GroupingEnabled)
	s.Len(t.Groups, 2)

	_, err := s.run("reset")
	s.Error(err, "reset needs --yes")

	s.mustRun(&t, "reset", "--yes")
	s.Equal(0, t.Rounds)
}

func (s *CLISuite) TestPlayerUpdateOnlySendsChangedFlags() {
	ids := s.addPlayers("Ann")

	var p response.Player
	s.mustRun(&p, "player", "update", ids[0], "--note", "captain")
	s.Equal("Ann", p.Name)
	s.Equal("captain", p.Note)
}

func (s *CLISuite) TestExport() {
	file := filepath.Join(s.T().TempDir(), "standings.xlsx")
	s.mustRun(nil, "export", "xlsx", "--file", file)

	data, err := os.ReadFile(file)
	s.Require().NoError(err)
	s.Equal("PK", string(data[:2]), "xlsx files are zip archives")
}

func (s *CLISuite) TestLoginSavesToken() {
	hash, err := auth.HashPassword("letmein")
	s.Require().NoError(err)
	s.server.Close()
	s.server = s.newServer(factory.WithPasswordHash(hash))

	_, err = s.run("player", "add", "--name", "Ann")
	s.Require().Error(err)
	s.Contains(err.Error(), "UNAUTHORIZED")

	s.mustRun(nil, "login", "--password", "letmein")
	token, err := os.ReadFile(s.tokenFile)
	s.Require().NoError(err)
	s.NotEmpty(token)

	s.addPlayers("Ann")

	s.mustRun(nil, "logout")
	_, err = os.Stat(s.tokenFile)
	s.True(os.IsNotExist(err))
}
