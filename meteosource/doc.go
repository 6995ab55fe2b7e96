// Package meteosource provides a Go client library for the Meteosource
// weather API.
//
// The package builds request URLs, sends authenticated requests, and
// converts the returned JSON into timezone-aware, indexable structures that
// mirror the API's sections: current conditions, minute/hour/day forecasts,
// historical time-machine data, and alerts.
//
// Basic Usage:
//
//	client := meteosource.NewClient(apiKey, meteosource.TierFlexi)
//
//	forecast, err := client.PointForecast(context.Background(), meteosource.PointRequest{
//		PlaceID:  "london",
//		Timezone: "Europe/London",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if temp, ok := forecast.Current.Number("temperature"); ok {
//		fmt.Printf("Temperature: %.1f\n", temp)
//	}
//
//	// Timesteps can be looked up by position, wire-format string, or instant.
//	step, err := forecast.Hourly.AtDate("2021-09-08T11:00:00")
//
// Historical data is requested per calendar day; multi-day requests are
// fetched sequentially and merged into one aggregate:
//
//	archive, err := client.TimeMachine(context.Background(), meteosource.TimeMachineRequest{
//		PlaceID:  "london",
//		DateFrom: "2019-05-05",
//		DateTo:   "2019-05-09",
//	})
//
// All instants are served by the API in UTC and converted to the requested
// display timezone. String-indexed lookups use the exact wire formats
// TimeFormat and DayFormat.
//
// For more information about the API, visit: https://www.meteosource.com/documentation
package meteosource
