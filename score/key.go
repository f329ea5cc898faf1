package score

// AccidentalKind names which symbol a key signature's accidentals use.
type AccidentalKind int

const (
	AccidentalNone AccidentalKind = iota
	AccidentalSharp
	AccidentalFlat
)

// KeySignature carries an explicit accidental count, supplementing the
// distilled spec's opaque "key" prolog element (SPEC_FULL §3), following
// how original_source's internal-model factory builds ImoKeySignature
// objects: a signed fifths count from which both the accidental kind and
// the count are derived.
type KeySignature struct {
	Fifths int // -7..+7, negative = flats, positive = sharps, 0 = C/Am
}

// Kind reports whether this key signature uses sharps or flats.
func (k KeySignature) Kind() AccidentalKind {
	switch {
	case k.Fifths > 0:
		return AccidentalSharp
	case k.Fifths < 0:
		return AccidentalFlat
	default:
		return AccidentalNone
	}
}

// Count reports how many accidentals the key signature displays.
func (k KeySignature) Count() int {
	if k.Fifths < 0 {
		return -k.Fifths
	}
	return k.Fifths
}

// sharpOrder/flatOrder are the conventional staff positions (GLOSSARY:
// position-on-staff) accidentals appear at for a treble clef, in the order
// they are added as the fifths count grows.
var sharpOrder = []int{8, 5, 9, 6, 3, 7, 4} // F C G D A E B lines/spaces
var flatOrder = []int{4, 7, 3, 6, 2, 5, 1}  // B E A D G C F

// Positions returns the staff positions, in display order, of this key
// signature's accidentals.
func (k KeySignature) Positions() []int {
	n := k.Count()
	if n == 0 {
		return nil
	}
	order := sharpOrder
	if k.Kind() == AccidentalFlat {
		order = flatOrder
	}
	if n > len(order) {
		n = len(order)
	}
	out := make([]int, n)
	copy(out, order[:n])
	return out
}
