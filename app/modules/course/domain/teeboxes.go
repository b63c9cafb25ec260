package coursedomain

var (
	homePars      = [HoleCount]int{4, 4, 3, 5, 4, 4, 3, 4, 5, 4, 3, 4, 5, 4, 4, 3, 4, 5}
	homeHandicaps = [HoleCount]int{7, 3, 15, 1, 11, 5, 17, 9, 13, 8, 16, 2, 10, 6, 12, 18, 4, 14}

	blueYardage  = [HoleCount]int{402, 418, 176, 545, 389, 431, 162, 377, 521, 410, 188, 442, 530, 395, 367, 154, 425, 560}
	whiteYardage = [HoleCount]int{380, 395, 158, 512, 366, 405, 145, 352, 498, 388, 170, 418, 505, 372, 345, 140, 401, 533}
	redYardage   = [HoleCount]int{325, 340, 120, 440, 310, 350, 110, 300, 430, 330, 130, 360, 445, 318, 290, 105, 342, 465}
)

// HomeCourse is the built-in course used when no other reference data is loaded.
var HomeCourse = Course{
	Name: "Home Course",
	TeeBoxes: []TeeBox{
		buildTeeBox("Blue", 72.4, 131, blueYardage),
		buildTeeBox("White", 70.6, 126, whiteYardage),
		buildTeeBox("Red", 68.9, 118, redYardage),
	},
}

func buildTeeBox(name string, rating float64, slope int, yardage [HoleCount]int) TeeBox {
	t := TeeBox{Name: name, Rating: rating, Slope: slope}
	for i := range t.Holes {
		t.Holes[i] = HoleInfo{
			Number:   i + 1,
			Par:      homePars[i],
			Yardage:  yardage[i],
			Handicap: homeHandicaps[i],
		}
	}
	return t
}

// TeeBoxWithPars builds an unrated tee box from a bare par row, as found on
// imported scorecards.
func TeeBoxWithPars(name string, pars [HoleCount]int) TeeBox {
	t := TeeBox{Name: name}
	for i := range t.Holes {
		t.Holes[i] = HoleInfo{Number: i + 1, Par: pars[i], Handicap: homeHandicaps[i]}
	}
	return t
}
