package main

import (
	"fmt"
	"strconv"

	"github.com/UnknownOlympus/hydrosite/internal/models"
	"github.com/UnknownOlympus/hydrosite/internal/siteid"
	"github.com/spf13/cobra"
)

func newLookupCmd(a *app) *cobra.Command {
	var coords models.Coordinates

	lookupCmd := &cobra.Command{
		Use:   "lookup",
		Short: "Query a single point",
	}
	lookupCmd.PersistentFlags().Float64Var(&coords.Longitude, "lon", 0, "longitude in decimal degrees")
	lookupCmd.PersistentFlags().Float64Var(&coords.Latitude, "lat", 0, "latitude in decimal degrees")
	_ = lookupCmd.MarkPersistentFlagRequired("lon")
	_ = lookupCmd.MarkPersistentFlagRequired("lat")

	var units string
	elevationCmd := &cobra.Command{
		Use:   "elevation",
		Short: "Print the ground elevation at the point",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if units == "" {
				units = a.cfg.Elevation.Units
			}
			unit, err := models.ParseUnit(units)
			if err != nil {
				return err
			}

			provider, err := newElevationProvider(a.cfg.Elevation, a.log, nil)
			if err != nil {
				return err
			}

			elev, err := provider.Elevation(cmd.Context(), coords, unit)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", strconv.FormatFloat(elev.Value, 'f', -1, 64), elev.Unit)
			return err
		},
	}
	elevationCmd.Flags().StringVar(&units, "units", "", "Meters or Feet (defaults to the configured units)")

	hucCmd := &cobra.Command{
		Use:   "huc",
		Short: "Print the hydrologic unit code containing the point",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newWatershedClient(a.cfg.Watershed, a.log)
			if err != nil {
				return err
			}

			huc, err := client.Lookup(cmd.Context(), coords)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", huc.Code, huc.Name)
			return err
		},
	}

	fipsCmd := &cobra.Command{
		Use:   "fips",
		Short: "Print the county FIPS code containing the point",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			county, err := newCensusClient(a.cfg.Census, a.log).Lookup(cmd.Context(), coords)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n",
				county.CountyCode, county.FIPS, county.Name, county.StateCode)
			return err
		},
	}

	var seq int
	siteIDCmd := &cobra.Command{
		Use:   "siteid",
		Short: "Print the USGS site id for the point",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := siteid.SiteIDWithSequence(coords, seq)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		},
	}
	siteIDCmd.Flags().IntVar(&seq, "seq", siteid.DefaultSequence, "sequence number of the site at this point (1-99)")

	lookupCmd.AddCommand(elevationCmd, hucCmd, fipsCmd, siteIDCmd)

	return lookupCmd
}
