package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/palemoky/whist/internal/apperrors"
	"github.com/palemoky/whist/internal/game/strategy"
)

// PlayerList 四个座位的策略配置。
//
// 支持两种写法：
//
//	players:
//	  - {strategy: human, seat: 0}
//
// 以及旧的字符串写法 "human,0;smart,1;legal,2;random,3"。
type PlayerList []PlayerConfig

// UnmarshalYAML 同时接受列表和旧字符串写法
func (p *PlayerList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		players, err := parseLegacyPlayers(node.Value)
		if err != nil {
			return err
		}
		*p = players
		return nil
	case yaml.SequenceNode:
		players := make(PlayerList, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind == yaml.ScalarNode {
				pc, err := parseLegacyPlayer(item.Value)
				if err != nil {
					return err
				}
				players = append(players, pc)
				continue
			}
			var pc PlayerConfig
			if err := item.Decode(&pc); err != nil {
				return err
			}
			players = append(players, pc)
		}
		*p = players
		return nil
	}
	return fmt.Errorf("%w: players must be a list or a \"kind,seat;...\" string (line %d)", apperrors.ErrInvalidConfig, node.Line)
}

// Assignments 校验并转换为策略分配：恰好四个座位，每个座位 0-3 各出现一次
func (p PlayerList) Assignments() ([]strategy.Assignment, error) {
	if len(p) != strategy.NumSeats {
		return nil, fmt.Errorf("%w: expected %d players, got %d", apperrors.ErrInvalidConfig, strategy.NumSeats, len(p))
	}
	seen := make(map[int]bool, len(p))
	assignments := make([]strategy.Assignment, 0, len(p))
	for _, pc := range p {
		if pc.Seat < 0 || pc.Seat >= strategy.NumSeats {
			return nil, fmt.Errorf("%w: seat %d out of range", apperrors.ErrInvalidConfig, pc.Seat)
		}
		if seen[pc.Seat] {
			return nil, fmt.Errorf("%w: seat %d assigned twice", apperrors.ErrInvalidConfig, pc.Seat)
		}
		seen[pc.Seat] = true

		kind, err := strategy.ParseKind(pc.Strategy)
		if err != nil {
			return nil, fmt.Errorf("%w: seat %d: %v", apperrors.ErrInvalidConfig, pc.Seat, err)
		}
		assignments = append(assignments, strategy.Assignment{Kind: kind, Seat: pc.Seat})
	}
	return assignments, nil
}

// HasHuman 是否有人类玩家
func (p PlayerList) HasHuman() bool {
	for _, pc := range p {
		if strings.EqualFold(strings.TrimSpace(pc.Strategy), string(strategy.KindHuman)) {
			return true
		}
	}
	return false
}

func parseLegacyPlayers(value string) (PlayerList, error) {
	var players PlayerList
	for _, entry := range strings.Split(strings.TrimSpace(value), ";") {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		pc, err := parseLegacyPlayer(entry)
		if err != nil {
			return nil, err
		}
		players = append(players, pc)
	}
	return players, nil
}

func parseLegacyPlayer(entry string) (PlayerConfig, error) {
	parts := strings.Split(strings.TrimSpace(entry), ",")
	if len(parts) != 2 {
		return PlayerConfig{}, fmt.Errorf("%w: player entry %q must be \"kind,seat\"", apperrors.ErrInvalidConfig, entry)
	}
	seat, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return PlayerConfig{}, fmt.Errorf("%w: player entry %q has a bad seat", apperrors.ErrInvalidConfig, entry)
	}
	return PlayerConfig{Strategy: strings.TrimSpace(parts[0]), Seat: seat}, nil
}
