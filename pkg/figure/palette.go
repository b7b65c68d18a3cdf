package figure

const (
	SuccessColor = "#55D605"
	FailureColor = "#FF0000"
)

// Qualitative is the categorical palette used for booster version series.
var Qualitative = []string{
	"#636EFA",
	"#EF553B",
	"#00CC96",
	"#AB63FA",
	"#FFA15A",
	"#19D3F3",
	"#FF6692",
	"#B6E880",
	"#FF97FF",
	"#FECB52",
}

// QualitativeColor returns the palette colour for the i-th category,
// wrapping around when there are more categories than colours.
func QualitativeColor(i int) string {
	return Qualitative[i%len(Qualitative)]
}
