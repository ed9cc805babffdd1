package network

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/PatrikSjolin/hollowheart/internal/domain/building"
	"github.com/PatrikSjolin/hollowheart/internal/domain/character"
	"github.com/PatrikSjolin/hollowheart/internal/domain/item"
	"github.com/PatrikSjolin/hollowheart/internal/domain/resource"
	"github.com/PatrikSjolin/hollowheart/internal/engine"
)

// ErrUnknownCommand is returned for a command type the server does not handle.
var ErrUnknownCommand = errors.New("unknown command")

// PlayerAction represents an incoming command from the frontend.
type PlayerAction struct {
	Type    string          `json:"type"` // "DESCEND", "EQUIP", "BUILD", etc.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// actionPayload is the union of every command's arguments.
type actionPayload struct {
	Attribute string `json:"attribute"`
	Slot      string `json:"slot"`
	ItemID    string `json:"item_id"`
	Research  string `json:"research"`
	Building  string `json:"building"`
	Resource  string `json:"resource"`
	Amount    int    `json:"amount"`
}

// Dispatch routes action to the session. accepted is the engine's verdict;
// err reports a malformed or unknown command that never reached it.
func Dispatch(s *engine.Session, action PlayerAction) (accepted bool, err error) {
	var p actionPayload
	if len(action.Payload) > 0 {
		if err := json.Unmarshal(action.Payload, &p); err != nil {
			return false, fmt.Errorf("bad %s payload: %w", action.Type, err)
		}
	}

	switch action.Type {
	case "DESCEND":
		return s.Descend(), nil
	case "ASCEND":
		return s.Ascend(), nil
	case "CLIMB":
		return s.ClimbUp(), nil
	case "UPGRADE":
		a, err := character.ParseAttribute(p.Attribute)
		if err != nil {
			return false, err
		}
		return s.UpgradeStat(a), nil
	case "EQUIP":
		slot := item.Slot(p.Slot)
		if !slot.Valid() {
			return false, fmt.Errorf("unknown slot %q", p.Slot)
		}
		return s.EquipItem(slot, p.ItemID), nil
	case "UNEQUIP":
		slot := item.Slot(p.Slot)
		if !slot.Valid() {
			return false, fmt.Errorf("unknown slot %q", p.Slot)
		}
		return s.UnequipItem(slot), nil
	case "USE":
		return s.UseItem(p.ItemID), nil
	case "RESEARCH":
		return s.StartResearch(p.Research), nil
	case "BUILD":
		k, err := building.Parse(p.Building)
		if err != nil {
			return false, err
		}
		return s.BuyBuilding(k), nil
	case "CONVERT":
		k, err := resource.Parse(p.Resource)
		if err != nil {
			return false, err
		}
		return s.ConvertResource(k, p.Amount), nil
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownCommand, action.Type)
}

// Ack is sent back to the issuing client only.
type Ack struct {
	Type     string `json:"type"`
	Command  string `json:"command"`
	Accepted bool   `json:"accepted"`
	Error    string `json:"error,omitempty"`
}
