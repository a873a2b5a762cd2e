package identity

import "strings"

// Identity is the in-universe character bound to a (side, slot) pair.
type Identity struct {
	DisplayName string `json:"display_name"`
	RoleLabel   string `json:"role_label"`
	AccentColor string `json:"accent_color"`
}

// placeholderName marks slots without a thematic character in authored data.
const placeholderName = "(empty)"

// IsEmpty reports whether the identity is the no-character sentinel.
func (i Identity) IsEmpty() bool {
	name := strings.TrimSpace(i.DisplayName)
	return name == "" || name == placeholderName
}

// SlotIdentity pairs a slot with its identity for listing.
type SlotIdentity struct {
	Slot     Slot
	Identity Identity
}

func character(name, role, accent string) Identity {
	return Identity{DisplayName: name, RoleLabel: role, AccentColor: accent}
}

// vacant slots keep role and color so the piece still renders as a plain disc.
func vacant(role, accent string) Identity {
	return Identity{RoleLabel: role, AccentColor: accent}
}

// 폰 슬롯은 세 명이 번갈아 맡는다(개별 폰은 구분하지 않음).
var roster = [2][SlotCount]Identity{
	White: {
		King:    character("Jon Snow", "King (Trắng)", "#1e293b"),
		Queen:   character("Daenerys Targaryen", "Queen", "#334155"),
		RookA:   character("Eddard Stark", "Rook", "#0f766e"),
		RookB:   character("Brienne of Tarth", "Rook", "#0f766e"),
		BishopA: character("Maester Aemon", "Bishop", "#1d4ed8"),
		BishopB: character("Samwell Tarly", "Bishop", "#1d4ed8"),
		KnightA: character("Arya Stark", "Knight", "#a21caf"),
		KnightB: vacant("Knight", "#a21caf"),
		Pawn1:   character("Davos Seaworth", "Pawn", "#166534"),
		Pawn2:   character("Podrick Payne", "Pawn", "#166534"),
		Pawn3:   character("Grenn", "Pawn", "#166534"),
		Pawn4:   character("Davos Seaworth", "Pawn", "#166534"),
		Pawn5:   character("Podrick Payne", "Pawn", "#166534"),
		Pawn6:   character("Grenn", "Pawn", "#166534"),
		Pawn7:   character("Davos Seaworth", "Pawn", "#166534"),
		Pawn8:   character("Podrick Payne", "Pawn", "#166534"),
	},
	Black: {
		King:    character("Cersei Lannister", "King (Đen)", "#111827"),
		Queen:   character("Petyr Baelish (Littlefinger)", "Queen", "#111827"),
		RookA:   character("Tywin Lannister", "Rook", "#7c2d12"),
		RookB:   character("Roose Bolton", "Rook", "#7c2d12"),
		BishopA: character("Melisandre", "Bishop", "#991b1b"),
		BishopB: character("High Sparrow", "Bishop", "#991b1b"),
		KnightA: character("Sandor Clegane (The Hound)", "Knight", "#6b7280"),
		KnightB: vacant("Knight", "#6b7280"),
		Pawn1:   character("Ramsay Bolton", "Pawn", "#7f1d1d"),
		Pawn2:   character("Joffrey Baratheon", "Pawn", "#7f1d1d"),
		Pawn3:   character("Qyburn", "Pawn", "#7f1d1d"),
		Pawn4:   character("Ramsay Bolton", "Pawn", "#7f1d1d"),
		Pawn5:   character("Joffrey Baratheon", "Pawn", "#7f1d1d"),
		Pawn6:   character("Qyburn", "Pawn", "#7f1d1d"),
		Pawn7:   character("Ramsay Bolton", "Pawn", "#7f1d1d"),
		Pawn8:   character("Joffrey Baratheon", "Pawn", "#7f1d1d"),
	},
}

// IdentityOf returns the character for a side and slot. Values outside the
// enums yield the zero Identity, which is empty.
func IdentityOf(side Side, slot Slot) Identity {
	if !side.valid() || !slot.Valid() {
		return Identity{}
	}
	return roster[side][slot]
}

// Roster lists a side's identities in slot order.
func Roster(side Side) []SlotIdentity {
	if !side.valid() {
		return nil
	}
	out := make([]SlotIdentity, 0, SlotCount)
	for i, id := range roster[side] {
		out = append(out, SlotIdentity{Slot: Slot(i), Identity: id})
	}
	return out
}
