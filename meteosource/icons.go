package meteosource

// WeatherType is one entry of the icon-code table: a human-readable weather
// category and its condensed numeric id. Night icons share the id of their
// day counterpart.
type WeatherType struct {
	Name string
	ID   int
}

// weatherTypes maps the API's numeric icon codes to weather categories.
// Codes absent from the table resolve to the entry for code 1.
var weatherTypes = map[int]WeatherType{
	1:  {"not_available", 1},
	2:  {"sunny", 2},
	3:  {"mostly_sunny", 3},
	4:  {"partly_sunny", 4},
	5:  {"mostly_cloudy", 5},
	6:  {"cloudy", 6},
	7:  {"overcast", 7},
	8:  {"overcast_with_low_clouds", 8},
	9:  {"fog", 9},
	10: {"light_rain", 10},
	11: {"rain", 11},
	12: {"possible_rain", 12},
	13: {"rain_shower", 13},
	14: {"thunderstorm", 14},
	15: {"local_thunderstorms", 15},
	16: {"light_snow", 16},
	17: {"snow", 17},
	18: {"possible_snow", 18},
	19: {"snow_shower", 19},
	20: {"rain_and_snow", 20},
	21: {"possible_rain_and_snow", 21},
	22: {"rain_and_snow", 20},
	23: {"freezing_rain", 22},
	24: {"possible_freezing_rain", 23},
	25: {"hail", 24},
	26: {"sunny", 2},
	27: {"mostly_sunny", 3},
	28: {"partly_sunny", 4},
	29: {"mostly_cloudy", 5},
	30: {"cloudy", 6},
	31: {"overcast_with_low_clouds", 8},
	32: {"rain_shower", 13},
	33: {"local_thunderstorms", 15},
	34: {"snow_shower", 19},
	35: {"rain_and_snow", 20},
	36: {"possible_rain_and_snow", 21},
}

// weatherTypeForIcon resolves a raw icon field into its weather category,
// falling back to the default entry for missing or unknown codes.
func weatherTypeForIcon(raw any) WeatherType {
	code, ok := raw.(float64)
	if !ok {
		return weatherTypes[1]
	}
	wt, ok := weatherTypes[int(code)]
	if !ok {
		return weatherTypes[1]
	}
	return wt
}
