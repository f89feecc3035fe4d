package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mcoot/tilescore/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
	errW   io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w, errW io.Writer) *Output {
	return &Output{format: format, w: w, errW: errW}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		_, _ = fmt.Fprintln(o.errW, string(data))
	} else {
		_, _ = fmt.Fprintf(o.errW, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Player:
		o.printPlayer(v)
	case []response.Player:
		o.printPlayers(v)
	case response.PlayerDetail:
		o.printPlayerDetail(v)
	case response.Tournament:
		o.printTournament(v)
	case response.Round:
		o.printRound(v)
	case []response.Round:
		for _, r := range v {
			o.printRound(r)
		}
		if len(v) == 0 {
			o.printf("No rounds played yet\n")
		}
	case response.PlayerBoard:
		o.printPlayerBoard(v)
	case response.GroupBoard:
		o.printGroupBoard(v)
	case response.AuthResponse:
		o.printf("Logged in, session expires %s\n", v.ExpiresAt.Format("2006-01-02 15:04"))
	case HealthResult:
		o.printf("Status: %s\n", v.Status)
		if v.Latency != "" {
			o.printf("Latency: %s\n", v.Latency)
		}
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type
type HealthResult struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"` // filled in by the client
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

func (o *Output) printPlayer(p response.Player) {
	o.printf("Player: %s (%s)\n", p.Name, p.ID)
	if p.Avatar != "" {
		o.printf("Avatar: %s\n", p.Avatar)
	}
	if p.Note != "" {
		o.printf("Note: %s\n", p.Note)
	}
}

func (o *Output) printPlayers(players []response.Player) {
	if len(players) == 0 {
		o.printf("No players registered\n")
		return
	}
	for _, p := range players {
		o.printf("%-12s %s\n", p.ID, p.Name)
	}
}

func (o *Output) printPlayerDetail(d response.PlayerDetail) {
	o.printPlayer(d.Player)
	o.printf("Rank: %d\n", d.Rank)
	o.printf("Score: %s\n", formatScore(d.Score))
	o.printf("Rounds played: %d\n", d.RoundsPlayed)
	for _, p := range d.Progression {
		o.printf("  round %-3d %8s  total %s\n", p.Round, formatScore(p.Delta), formatScore(p.Total))
	}
}

func (o *Output) printTournament(t response.Tournament) {
	o.printf("Players: %d\n", t.Players)
	o.printf("Rounds: %d\n", t.Rounds)
	bonus := make([]string, len(t.RankBonus))
	for i, b := range t.RankBonus {
		bonus[i] = formatScore(b)
	}
	o.printf("Rank bonus: %s\n", strings.Join(bonus, " / "))
	o.printf("Top K: %d\n", t.TopK)
	o.printf("Sum rule enforced: %s\n", yesNo(t.EnforceTotal))
	o.printf("Grouping: %s", yesNo(t.GroupingEnabled))
	if t.GroupingLocked {
		o.printf(" (locked)")
	}
	o.printf("\n")
	for _, g := range t.Groups {
		o.printf("  %s %s: %s\n", g.ID, g.Name, strings.Join(g.Members, ", "))
	}
}

func (o *Output) printRound(r response.Round) {
	o.printf("Round %d (%s)\n", r.Number, r.ID)
	for _, s := range r.Seats {
		o.printf("  %-5s %-16s %7d  base %6s  bonus %6s  delta %6s\n",
			s.Seat, s.Name, s.Raw, formatScore(s.Base), formatScore(s.Bonus), formatScore(s.Delta))
	}
}

func (o *Output) printPlayerBoard(b response.PlayerBoard) {
	if len(b.Entries) == 0 {
		o.printf("No players registered\n")
		return
	}
	for i, e := range b.Entries {
		o.printf("%3d. %-16s %8s\n", e.Rank, e.Name, formatScore(e.Score))
		if e.InTopK && i == b.TopK-1 && i < len(b.Entries)-1 {
			o.printf("     %s\n", strings.Repeat("-", 25))
		}
	}
}

func (o *Output) printGroupBoard(b response.GroupBoard) {
	if !b.Enabled {
		o.printf("Grouping is disabled\n")
		return
	}
	for _, e := range b.Entries {
		marker := " "
		if e.Winning {
			marker = "*"
		}
		names := make([]string, len(e.Members))
		for i, m := range e.Members {
			names[i] = fmt.Sprintf("%s %s", m.Name, formatScore(m.Score))
		}
		o.printf("%s%2d. %-16s %8s  (%s)\n", marker, e.Rank, e.Name, formatScore(e.Score), strings.Join(names, ", "))
	}
}

func formatScore(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if v > 0 {
		return "+" + s
	}
	return s
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
