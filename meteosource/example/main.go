// Package main provides an example of using the meteosource client to fetch
// a point forecast and historical data.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/meteosource/go-meteosource/meteosource"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}
	apiKey := os.Getenv("METEOSOURCE_API_KEY")
	if apiKey == "" {
		log.Fatal("METEOSOURCE_API_KEY is not set")
	}

	client := meteosource.NewClient(apiKey, meteosource.TierFree)

	forecast, err := client.PointForecast(context.Background(), meteosource.PointRequest{
		PlaceID:  "london",
		Timezone: "Europe/London",
		Units:    meteosource.UnitsMetric,
	})
	if err != nil {
		switch e := err.(type) {
		case *meteosource.APIError:
			log.Fatalf("API error %d: %s", e.StatusCode, e.Message)
		default:
			log.Fatalf("Request failed: %v", err)
		}
	}

	fmt.Printf("Forecast for lat %.5f, lon %.5f (elevation %d m, %s)\n\n",
		forecast.Lat, forecast.Lon, forecast.Elevation, forecast.Timezone)

	fmt.Println("=== CURRENT WEATHER ===")
	if summary, ok := forecast.Current.Text("summary"); ok {
		fmt.Printf("Conditions: %s\n", summary)
	}
	if temp, ok := forecast.Current.Number("temperature"); ok {
		fmt.Printf("Temperature: %.1f°C\n", temp)
	}
	if wind, ok := forecast.Current.Nested("wind"); ok {
		if speed, ok := wind.Number("speed"); ok {
			fmt.Printf("Wind speed: %.1f m/s\n", speed)
		}
		if dir, ok := wind.Text("dir"); ok {
			fmt.Printf("Wind direction: %s\n", dir)
		}
	}

	fmt.Println()
	fmt.Println("=== NEXT HOURS ===")
	for i := 0; i < forecast.Hourly.Len() && i < 6; i++ {
		step, err := forecast.Hourly.At(i)
		if err != nil {
			log.Fatalf("Hourly lookup failed: %v", err)
		}
		date, _ := step.Time("date")
		temp, _ := step.Number("temperature")
		weather, _ := step.Text("weather")
		fmt.Printf("%s | %5.1f°C | %s\n", date.Format("15:04"), temp, weather)
	}

	if summary, ok := forecast.Minutely.Summary(); ok {
		fmt.Println()
		fmt.Printf("Precipitation minutecast: %s\n", summary)
	}

	active, err := forecast.Alerts.ActiveAlerts(nil)
	if err != nil {
		log.Fatalf("Alert query failed: %v", err)
	}
	if len(active) > 0 {
		fmt.Println()
		fmt.Println("=== ACTIVE ALERTS ===")
		for _, alert := range active {
			event, _ := alert.Text("event")
			expires, _ := alert.Time("expires")
			fmt.Printf("%s (until %s)\n", event, expires.Format("2006-01-02 15:04"))
		}
	}

	// Historical data needs a paid tier; skip it on the free one.
	if os.Getenv("METEOSOURCE_TIER") == meteosource.TierFlexi {
		archive, err := client.TimeMachine(context.Background(), meteosource.TimeMachineRequest{
			PlaceID:  "london",
			DateFrom: "2019-05-05",
			DateTo:   "2019-05-07",
		})
		if err != nil {
			log.Fatalf("Time machine request failed: %v", err)
		}
		fmt.Println()
		fmt.Printf("Archive: %s\n", archive.Data)
	}
}
