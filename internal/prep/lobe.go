package prep

import (
	"fmt"
	"strconv"
)

// Anatomical lobe, numbered as in the lobe file names
type LobeID int

const (
	LeftLowerLobe LobeID = iota + 2
	LeftUpperLobe
	RightLowerLobe
	RightMiddleLobe
	RightUpperLobe
)

var LobeIDs = []LobeID{LeftLowerLobe, LeftUpperLobe, RightLowerLobe, RightMiddleLobe, RightUpperLobe}

var lobeNames = map[LobeID]string{
	LeftLowerLobe:   "LeftLowerLobe",
	LeftUpperLobe:   "LeftUpperLobe",
	RightLowerLobe:  "RightLowerLobe",
	RightMiddleLobe: "RightMiddleLobe",
	RightUpperLobe:  "RightUpperLobe",
}

// Accepts a lobe name (e.g., "LeftUpperLobe") or its number (e.g., "3")
func (l *LobeID) Set(s string) error {
	for id, name := range lobeNames {
		if name == s {
			*l = id
			return nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil {
		if _, ok := lobeNames[LobeID(n)]; ok {
			*l = LobeID(n)
			return nil
		}
	}
	return fmt.Errorf("\"%s\" is not a valid lobe", s)
}

func (l LobeID) String() string {
	if name, ok := lobeNames[l]; ok {
		return name
	}
	return fmt.Sprintf("lobe(%d)", int(l))
}

// Name of the lobe file for patient, e.g., lobe-3-P01.graphml
func (l LobeID) FileName(patient string) string {
	return fmt.Sprintf("lobe-%d-%s%s", int(l), patient, graphExt)
}
