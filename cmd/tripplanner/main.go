package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/transportnsw/tripplanner/client"
	"github.com/transportnsw/tripplanner/config"
	"github.com/transportnsw/tripplanner/feedcache"
	"github.com/transportnsw/tripplanner/journey"
	"github.com/transportnsw/tripplanner/model"
	"github.com/transportnsw/tripplanner/planner"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	if os.Getenv("TNSW_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "tripplanner",
		Description: "Queries Transport NSW journeys and correlates them with live vehicle positions",

		Commands: []*cli.Command{
			{
				Name:  "query",
				Usage: "run one ad-hoc trip query and print the normalized result",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "api-key", EnvVars: []string{"TNSW_API_KEY"}, Required: true},
					&cli.StringFlag{Name: "origin", Required: true, Usage: "origin stop or address ID"},
					&cli.StringFlag{Name: "destination", Required: true, Usage: "destination stop or address ID"},
					&cli.IntFlag{Name: "journeys", Value: 1},
					&cli.StringFlag{Name: "fare-type", Value: "ADULT"},
					&cli.StringSliceFlag{Name: "mode", Usage: "restrict to modes (train, light_rail, bus, coach, ferry, school_bus)"},
				},
				Action: runQuery,
			},
			{
				Name:  "trips",
				Usage: "run every configured trip once and print the normalized results",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Value: "config.yml"},
				},
				Action: runTrips,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func runQuery(c *cli.Context) error {
	var modes []client.TransportMode
	for _, m := range c.StringSlice("mode") {
		if !client.ValidMode(m) {
			return fmt.Errorf("unknown transport mode %q", m)
		}
		modes = append(modes, client.TransportMode(m))
	}

	apiClient := client.NewClient(c.String("api-key"))
	p := planner.New(apiClient, feedcache.New(apiClient))

	results, err := p.Retrieve(context.Background(), planner.TripRequest{
		Origin:      c.String("origin"),
		Destination: c.String("destination"),
		NumJourneys: c.Int("journeys"),
		Modes:       modes,
	})
	if err != nil {
		return err
	}
	printResults(results, model.FarePerson(c.String("fare-type")))
	return nil
}

func runTrips(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	apiClient := client.NewClient(cfg.APIKey)
	p := planner.New(apiClient, feedcache.New(apiClient))

	for _, trip := range cfg.Trips {
		fmt.Printf("== %s ==\n", trip.Name)
		results, err := p.Retrieve(context.Background(), planner.TripRequest{
			Origin:      trip.StopID,
			Destination: trip.DestinationStopID,
			NumJourneys: trip.NumJourneys,
			Modes:       trip.Modes(),
		})
		if err != nil {
			log.Error().Err(err).Str("trip", trip.Name).Msg("Trip retrieval failed")
			continue
		}
		printResults(results, trip.FarePerson())
	}
	return nil
}

func printResults(results []planner.JourneyRealtime, person model.FarePerson) {
	now := time.Now().UTC()
	for i, res := range results {
		fmt.Printf("Journey %d\n", i+1)
		printJourney(res, person, now)
	}
}

func printJourney(res planner.JourneyRealtime, person model.FarePerson, now time.Time) {
	j := res.Journey
	originLeg := journey.FirstNonWalkingLeg(j.Legs, journey.Forward)
	destLeg := journey.FirstNonWalkingLeg(j.Legs, journey.Reverse)
	if originLeg == nil || destLeg == nil {
		fmt.Println("  walking only")
		return
	}

	origin := originLeg.Origin
	destination := destLeg.Destination
	transport := originLeg.Transportation

	fmt.Printf("  Origin       %s %s\n", origin.ID, origin.Name)
	fmt.Printf("  Destination  %s %s\n", destination.ID, destination.Name)
	fmt.Printf("  Changes      %d\n", journey.CountTransfers(j.Legs))
	fmt.Printf("  Mode         %s %s\n", transport.Product.Class, journey.Icon(transport.Product.Class))
	if transport.Number != nil {
		fmt.Printf("  Line         %s\n", *transport.Number)
	}
	if transport.DisassembledName != nil {
		fmt.Printf("  Line (short) %s\n", *transport.DisassembledName)
	}
	if transport.Description != nil {
		fmt.Printf("  Line (desc)  %s\n", *transport.Description)
	}
	if origin.DepartureTimeEstimated != nil {
		fmt.Printf("  Departs      %s (due %dm)\n",
			origin.DepartureTimeEstimated.Format(time.RFC3339),
			journey.DueMinutes(*origin.DepartureTimeEstimated, now))
	} else if origin.DepartureTimePlanned != nil {
		fmt.Printf("  Departs      %s (planned)\n", origin.DepartureTimePlanned.Format(time.RFC3339))
	}
	if destination.ArrivalTimeEstimated != nil {
		fmt.Printf("  Arrives      %s\n", destination.ArrivalTimeEstimated.Format(time.RFC3339))
	} else if destination.ArrivalTimePlanned != nil {
		fmt.Printf("  Arrives      %s (planned)\n", destination.ArrivalTimePlanned.Format(time.RFC3339))
	}
	if occ := origin.Properties.Occupancy; occ != "" {
		fmt.Printf("  Occupancy    %s\n", occ)
	}
	if tid := transport.Properties.RealtimeTripID; tid != "" {
		fmt.Printf("  Realtime ID  %s\n", tid)
	}
	if ticket := journey.SelectTicket(j.Fare.Tickets, person); ticket != nil {
		fmt.Printf("  Fare (%s) $%s\n", ticket.Person, ticket.Price())
	}
	if res.Vehicle != nil {
		fmt.Printf("  Vehicle      %.5f,%.5f\n", res.Vehicle.Latitude, res.Vehicle.Longitude)
	}
}
