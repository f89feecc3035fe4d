package roster

import (
	"log/slog"
	"strings"

	"github.com/mcoot/tilescore/internal/dependencies/random"
	"github.com/mcoot/tilescore/internal/model"
)

// Service manages the player set and group assignments of a tournament
type Service struct {
	random random.Random
	logger *slog.Logger
}

// New creates a new roster Service
func New(random random.Random, logger *slog.Logger) *Service {
	return &Service{
		random: random,
		logger: logger,
	}
}

// AddPlayer registers a player with a zero total
func (s *Service) AddPlayer(t *model.Tournament, name, avatar string) (*model.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.NewValidationError(model.RuleEmptyName, "player name cannot be empty")
	}

	player := model.Player{
		ID:     model.PlayerID(s.random.ID(random.PrefixPlayer)),
		Name:   name,
		Avatar: avatar,
	}
	t.Roster = append(t.Roster, player)
	if t.Ledger == nil {
		t.Ledger = make(model.Ledger)
	}
	t.Ledger[player.ID] = 0

	s.logger.Info("player added",
		slog.String("player_id", string(player.ID)),
		slog.String("name", player.Name),
	)

	return &player, nil
}

// RemovePlayer drops a player from the roster, the ledger and any group.
// Historical rounds keep their references to the removed ID.
func (s *Service) RemovePlayer(t *model.Tournament, id model.PlayerID) error {
	index := -1
	for i, p := range t.Roster {
		if p.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return model.NewNotFoundError(model.KindPlayer, string(id))
	}

	t.Roster = append(t.Roster[:index:index], t.Roster[index+1:]...)
	delete(t.Ledger, id)
	for i := range t.Groups {
		t.Groups[i].RemoveMember(id)
	}

	s.logger.Info("player removed", slog.String("player_id", string(id)))

	return nil
}

// UpdatePlayer applies a patch to a player's details
func (s *Service) UpdatePlayer(t *model.Tournament, id model.PlayerID, patch model.PlayerPatch) (*model.Player, error) {
	player := t.GetPlayer(id)
	if player == nil {
		return nil, model.NewNotFoundError(model.KindPlayer, string(id))
	}

	name := player.Name
	if patch.Name != nil {
		name = strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, model.NewValidationError(model.RuleEmptyName, "player name cannot be empty")
		}
	}

	player.Name = name
	if patch.Avatar != nil {
		player.Avatar = *patch.Avatar
	}
	if patch.Note != nil {
		player.Note = *patch.Note
	}

	updated := *player
	return &updated, nil
}

// SetGrouping replaces the grouping configuration.
// Rejected with a LockedError once any round has been recorded.
func (s *Service) SetGrouping(t *model.Tournament, enabled bool, groups []model.Group) error {
	if t.GroupingLocked() {
		return model.ErrGroupingLocked
	}

	validated, err := s.validateGroups(t, enabled, groups)
	if err != nil {
		return err
	}

	t.GroupingEnabled = enabled
	t.Groups = validated

	s.logger.Info("grouping updated",
		slog.Bool("enabled", enabled),
		slog.Int("groups", len(validated)),
	)

	return nil
}

// validateGroups checks group rules and returns copies with IDs assigned
func (s *Service) validateGroups(t *model.Tournament, enabled bool, groups []model.Group) ([]model.Group, error) {
	out := make([]model.Group, 0, len(groups))
	ids := make(map[model.GroupID]bool, len(groups))
	owners := make(map[model.PlayerID]string)

	for _, g := range groups {
		name := strings.TrimSpace(g.Name)

		group, err := model.NewGroup(g.ID, name, g.Members)
		if err != nil {
			return nil, err
		}

		if group.ID != "" {
			if ids[group.ID] {
				return nil, model.NewValidationError(model.RuleGroupDuplicateID,
					"group ID %q is used more than once", group.ID)
			}
			ids[group.ID] = true
		}

		if enabled {
			if len(group.Members) != model.GroupSize {
				return nil, model.NewValidationError(model.RuleGroupSize,
					"group %q needs exactly %d members, got %d", name, model.GroupSize, len(group.Members))
			}
			for _, m := range group.Members {
				if !t.HasPlayer(m) {
					return nil, model.NewValidationError(model.RuleGroupUnknownMember,
						"group %q member %q is not in the roster", name, m)
				}
				if other, ok := owners[m]; ok {
					return nil, model.NewValidationError(model.RuleGroupOverlap,
						"player %q is in both group %q and group %q", m, other, name)
				}
				owners[m] = name
			}
		}

		out = append(out, group)
	}

	// Fresh IDs are assigned only once every group has passed validation
	for i := range out {
		if out[i].ID == "" {
			id := model.GroupID(s.random.ID(random.PrefixGroup))
			for ids[id] {
				id = model.GroupID(s.random.ID(random.PrefixGroup))
			}
			ids[id] = true
			out[i].ID = id
		}
	}

	return out, nil
}
