package theory

// Key is spec §3.1's Key entity: a tonic plus a mode, with the parent-key
// tonic carried explicitly rather than recomputed, since for modes it is
// not always the tonic's own key signature.
type Key struct {
	Tonic       Note
	Mode        Mode
	ParentTonic Note // for Major/Minor this equals Tonic
}

// NewMajorKey and NewMinorKey build a functional-analyzer key, where
// ParentTonic is always the tonic itself.
func NewMajorKey(tonic Note) Key { return Key{Tonic: tonic, Mode: Major, ParentTonic: tonic} }
func NewMinorKey(tonic Note) Key { return Key{Tonic: tonic, Mode: Minor, ParentTonic: tonic} }

// NewModalKey builds a modal-analyzer key: tonic is the local tonic, and
// the parent tonic is derived from ParentMajorTonicOffset so that (mode,
// tonic) uniquely determines the parent, per spec §3.1's invariant.
func NewModalKey(localTonic Note, mode Mode) Key {
	offset := ParentMajorTonicOffset[mode]
	parentPC := PitchClass(((int(localTonic.PitchClass()) - offset) % 12 + 12) % 12)
	preferFlat := localTonic.Accidental == Flat
	return Key{
		Tonic:       localTonic,
		Mode:        mode,
		ParentTonic: NoteFromPitchClass(parentPC, preferFlat),
	}
}

// DiatonicPitchClasses returns the seven pitch classes belonging to this
// key's diatonic collection.
func (k Key) DiatonicPitchClasses() map[PitchClass]bool {
	degrees := ScaleDegrees(k.Tonic.PitchClass(), k.Mode)
	out := make(map[PitchClass]bool, 7)
	for _, d := range degrees {
		out[d] = true
	}
	return out
}

// Contains reports whether pc belongs to this key's diatonic collection.
func (k Key) Contains(pc PitchClass) bool {
	return k.DiatonicPitchClasses()[pc]
}

// Degree returns the 0-indexed scale degree (0-6) of pc within this key,
// and false if pc is not diatonic to the key.
func (k Key) Degree(pc PitchClass) (int, bool) {
	degrees := ScaleDegrees(k.Tonic.PitchClass(), k.Mode)
	for i, d := range degrees {
		if d == pc {
			return i, true
		}
	}
	return 0, false
}

func (k Key) String() string {
	return k.Tonic.String() + " " + k.Mode.String()
}
