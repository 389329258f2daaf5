package melody

// Rest is the pitch symbol for silence.
const Rest = "REST"

// noteFreq maps pitch symbols to their frequency in Hz.
var noteFreq = map[string]float64{
	"C4": 261.63, "D4": 293.66, "E4": 329.63, "F4": 349.23,
	"G4": 392.00, "A4": 440.00, "B4": 493.88, "Bb4": 466.16,
	"C5": 523.25, "D5": 587.33, "E5": 659.25, "F5": 698.46, "G5": 783.99,
}

// HappyBirthday is the full song, one event per note.
var HappyBirthday = []Event{
	{"G4", 0.75}, {"G4", 0.25}, {"A4", 1}, {"G4", 1}, {"C5", 1}, {"B4", 2},
	{"G4", 0.75}, {"G4", 0.25}, {"A4", 1}, {"G4", 1}, {"D5", 1}, {"C5", 2},
	{"G4", 0.75}, {"G4", 0.25}, {"G5", 1}, {"E5", 1}, {"C5", 1}, {"B4", 1}, {"A4", 1},
	{"F5", 0.75}, {"F5", 0.25}, {"E5", 1}, {"C5", 1}, {"D5", 1}, {"C5", 2},
}

// Frequency returns the frequency for a pitch symbol.
// Rest and unknown symbols report false.
func Frequency(pitch string) (float64, bool) {
	f, ok := noteFreq[pitch]
	return f, ok
}
