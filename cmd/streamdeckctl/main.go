// Copyright 2026 The elgato-streamdeck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// streamdeckctl is a small command line tool for poking at attached
// devices: listing them, setting brightness and key images, and watching
// input events.
package main

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	streamdeck "github.com/streamduck-org/elgato-streamdeck"
)

var (
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	serialFlag string
)

func openDevice() (*streamdeck.Device, error) {
	found, err := streamdeck.ListDevices()
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("no supported device attached")
	}

	for _, fd := range found {
		if serialFlag == "" || fd.Serial == serialFlag {
			return streamdeck.Connect(fd.Kind, fd.Serial)
		}
	}
	return nil, fmt.Errorf("no device with serial %q", serialFlag)
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List attached devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := streamdeck.ListDevices()
			if err != nil {
				return err
			}
			if len(found) == 0 {
				log.Info().Msg("no supported device attached")
				return nil
			}
			for _, fd := range found {
				fmt.Printf("%s\t%s\n", fd.Serial, fd.Kind)
			}
			return nil
		},
	}
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show device details",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDevice()
			if err != nil {
				return err
			}
			defer d.Close()

			kind := d.Kind()
			rows, cols := kind.KeyLayout()
			fmt.Printf("model:    %s\n", kind)
			fmt.Printf("layout:   %dx%d (%d keys, %d with displays)\n",
				rows, cols, kind.KeyCount(), kind.DisplayKeyCount())
			if n := kind.EncoderCount(); n > 0 {
				fmt.Printf("encoders: %d\n", n)
			}
			if size, ok := kind.LCDStripSize(); ok {
				fmt.Printf("lcd:      %dx%d\n", size.X, size.Y)
			}

			if mfr, err := d.Manufacturer(); err == nil {
				fmt.Printf("vendor:   %s\n", mfr)
			}
			if sn, err := d.SerialNumber(); err == nil {
				fmt.Printf("serial:   %s\n", sn)
			}
			if fw, err := d.FirmwareVersion(); err == nil {
				fmt.Printf("firmware: %s\n", fw)
			}
			return nil
		},
	}
}

func brightnessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "brightness <percent>",
		Short: "Set panel brightness",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			percent, err := strconv.ParseUint(args[0], 10, 8)
			if err != nil {
				return fmt.Errorf("invalid percentage %q: %w", args[0], err)
			}

			d, err := openDevice()
			if err != nil {
				return err
			}
			defer d.Close()
			return d.SetBrightness(byte(percent))
		},
	}
}

func imageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "image <key> <file>",
		Short: "Show an image file on a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := strconv.ParseUint(args[0], 10, 8)
			if err != nil {
				return fmt.Errorf("invalid key %q: %w", args[0], err)
			}

			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()

			img, _, err := image.Decode(f)
			if err != nil {
				return fmt.Errorf("failed to decode %s: %w", args[1], err)
			}

			d, err := openDevice()
			if err != nil {
				return err
			}
			defer d.Close()

			if err := d.SetButtonImage(byte(key), img); err != nil {
				return err
			}
			return d.Flush()
		},
	}
}

func clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [key]",
		Short: "Blank one key display, or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDevice()
			if err != nil {
				return err
			}
			defer d.Close()

			if len(args) == 0 {
				if err := d.ClearAllButtonImages(); err != nil {
					return err
				}
				return d.Flush()
			}

			key, err := strconv.ParseUint(args[0], 10, 8)
			if err != nil {
				return fmt.Errorf("invalid key %q: %w", args[0], err)
			}
			if err := d.ClearButtonImage(byte(key)); err != nil {
				return err
			}
			return d.Flush()
		},
	}
}

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the device displays",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDevice()
			if err != nil {
				return err
			}
			defer d.Close()
			return d.Reset()
		},
	}
}

func listenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listen",
		Short: "Log input events until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDevice()
			if err != nil {
				return err
			}
			s := streamdeck.NewSharedDevice(d)
			defer s.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info().Stringer("model", s.Kind()).Msg("listening for input")

			reader := s.GetReader()
			for {
				events, err := reader.Read(ctx, 100)
				if err != nil {
					if ctx.Err() != nil {
						return nil
					}
					return err
				}
				for _, ev := range events {
					logEvent(ev)
				}
			}
		},
	}
}

func logEvent(ev streamdeck.Event) {
	switch ev.Type {
	case streamdeck.EventButtonDown:
		log.Info().Uint8("key", ev.Index).Msg("button down")
	case streamdeck.EventButtonUp:
		log.Info().Uint8("key", ev.Index).Msg("button up")
	case streamdeck.EventEncoderDown:
		log.Info().Uint8("encoder", ev.Index).Msg("encoder down")
	case streamdeck.EventEncoderUp:
		log.Info().Uint8("encoder", ev.Index).Msg("encoder up")
	case streamdeck.EventEncoderTwist:
		log.Info().Uint8("encoder", ev.Index).Int8("delta", ev.Delta).Msg("encoder twist")
	case streamdeck.EventTouchPointDown:
		log.Info().Uint8("point", ev.Index).Msg("touch point down")
	case streamdeck.EventTouchPointUp:
		log.Info().Uint8("point", ev.Index).Msg("touch point up")
	case streamdeck.EventTouchScreenPress:
		log.Info().Int("x", ev.Pos.X).Int("y", ev.Pos.Y).Msg("screen press")
	case streamdeck.EventTouchScreenLongPress:
		log.Info().Int("x", ev.Pos.X).Int("y", ev.Pos.Y).Msg("screen long press")
	case streamdeck.EventTouchScreenSwipe:
		log.Info().
			Int("x", ev.Pos.X).Int("y", ev.Pos.Y).
			Int("end_x", ev.End.X).Int("end_y", ev.End.Y).
			Msg("screen swipe")
	}
}

func main() {
	root := &cobra.Command{
		Use:           "streamdeckctl",
		Short:         "Control Stream Deck and compatible macro keypads",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&serialFlag, "serial", "", "serial number of the device to use")

	root.AddCommand(
		listCmd(),
		infoCmd(),
		brightnessCmd(),
		imageCmd(),
		clearCmd(),
		resetCmd(),
		listenCmd(),
	)

	if err := root.Execute(); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}
