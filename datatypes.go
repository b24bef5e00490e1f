package hstrade

// DataTypes are the types of data that the package supports
type DataTypes uint8

// values of DataTypes
const (
	DTunknown DataTypes = 0 + iota
	DTstring
	DTfloat
	DTint
)

// max value of DataTypes type
const MaxDT = DTint

//go:generate stringer -type=DataTypes

// DTFromString returns the DataTypes whose String() is nm, DTunknown if there is none.
func DTFromString(nm string) DataTypes {
	var nms []string
	for ind := DataTypes(0); ind <= MaxDT; ind++ {
		nms = append(nms, ind.String())
	}

	pos := position(nm, nms)
	if pos < 0 {
		return DTunknown
	}

	return DataTypes(uint8(pos))
}

// IsNumeric is true for DTfloat and DTint.
func (dt DataTypes) IsNumeric() bool {
	return dt == DTfloat || dt == DTint
}
