// Command bandinfo prints frequency-band power of a sampled signal.
//
// Samples are read from stdin as whitespace-separated decimal numbers.
//
// Usage:
//
//	bandinfo -rate 200 < samples.txt
//	bandinfo -rate 200 -method multitaper -relative < samples.txt
//	bandinfo -rate 200 -window 1 -timecourse -relative < samples.txt
//	bandinfo -rate 200 -bands "Slow:0.5-8,Fast:8-30" < samples.txt
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-spectral/bandpower"
	"github.com/cwbudde/algo-spectral/psd"
	"github.com/cwbudde/algo-spectral/stats/frequency"
)

func main() {
	rate := flag.Float64("rate", 0, "sampling frequency in Hz (required)")
	bandsFlag := flag.String("bands", "", `bands as "Name:low-high,..." (default: EEG Delta/Theta/Alpha/Beta)`)
	methodFlag := flag.String("method", "welch", "PSD estimation method: welch or multitaper")
	windowSec := flag.Float64("window", 0, "window length in seconds (0 derives it from the lowest band edge)")
	relative := flag.Bool("relative", false, "report relative instead of absolute power")
	timecourse := flag.Bool("timecourse", false, "print per-window band power over time (requires -window)")
	summary := flag.Bool("stats", false, "print PSD summary statistics")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bandinfo -rate <Hz> [flags] < samples\n\n")
		fmt.Fprintf(os.Stderr, "Prints frequency-band power of a sampled signal read from stdin.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *rate <= 0 {
		fmt.Fprintf(os.Stderr, "error: -rate must be > 0\n")
		os.Exit(1)
	}

	bands, err := parseBands(*bandsFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	method, err := parseMethod(*methodFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	signal, err := readSamples(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *timecourse {
		if err := printTimeCourse(signal, bands, *rate, *windowSec, *relative); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		return
	}

	if err := printBandPowers(signal, bands, method, *rate, *windowSec, *relative, *summary); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func readSamples(f *os.File) ([]float64, error) {
	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var samples []float64
	for scanner.Scan() {
		v, err := strconv.ParseFloat(scanner.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", len(samples)+1, err)
		}
		samples = append(samples, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples on stdin")
	}

	return samples, nil
}

func parseBands(s string) (bandpower.Bands, error) {
	if strings.TrimSpace(s) == "" {
		return bandpower.DefaultEEGBands(), nil
	}

	var bands bandpower.Bands
	for _, part := range strings.Split(s, ",") {
		name, interval, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, fmt.Errorf("band %q: want Name:low-high", part)
		}

		lowStr, highStr, ok := strings.Cut(interval, "-")
		if !ok {
			return nil, fmt.Errorf("band %q: want Name:low-high", part)
		}

		low, err := strconv.ParseFloat(lowStr, 64)
		if err != nil {
			return nil, fmt.Errorf("band %q lower edge: %w", name, err)
		}
		high, err := strconv.ParseFloat(highStr, 64)
		if err != nil {
			return nil, fmt.Errorf("band %q upper edge: %w", name, err)
		}

		bands = append(bands, bandpower.NamedBand{
			Name: name,
			Band: bandpower.Band{Low: low, High: high},
		})
	}

	return bands, bands.Validate()
}

func parseMethod(s string) (psd.Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "welch":
		return psd.MethodWelch, nil
	case "multitaper":
		return psd.MethodMultitaper, nil
	default:
		return 0, fmt.Errorf("unknown method %q (want welch or multitaper)", s)
	}
}

func printBandPowers(signal []float64, bands bandpower.Bands, method psd.Method,
	rate, windowSec float64, relative, summary bool,
) error {
	// One estimate shared across all band queries.
	if windowSec == 0 && method == psd.MethodWelch {
		lowest := bands[0].Band.Low
		for _, nb := range bands[1:] {
			if nb.Band.Low < lowest {
				lowest = nb.Band.Low
			}
		}
		if lowest <= 0 {
			return fmt.Errorf("cannot derive window length from a band edge at 0 Hz, set -window")
		}
		windowSec = 2 / lowest
	}

	sp, err := psd.Estimate(signal, method, psd.Config{SampleRate: rate, WindowSec: windowSec})
	if err != nil {
		return err
	}

	unit := "Power"
	if relative {
		unit = "Relative"
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Band\tRange\t%s\n", unit)

	for _, nb := range bands {
		power, err := bandpower.FromSpectrum(sp, nb.Band, relative)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%.6g\n", nb.Name, nb.Band, power)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	if summary {
		s := frequency.Calculate(sp)
		fmt.Printf("\nTotal power: %.6g\nPeak: %.3f Hz\nMean: %.3f Hz\nMedian: %.3f Hz\nSEF95: %.3f Hz\n",
			s.TotalPower, s.PeakFrequency, s.MeanFrequency, s.MedianFrequency, s.SpectralEdge95)
	}

	return nil
}

func printTimeCourse(signal []float64, bands bandpower.Bands, rate, windowSec float64, relative bool) error {
	if windowSec <= 0 {
		return fmt.Errorf("-timecourse requires -window > 0")
	}

	course, err := bandpower.TimeCourse(signal, bands, bandpower.TimeCourseConfig{
		SampleRate: rate,
		WindowSec:  windowSec,
		Relative:   relative,
	})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Time [s]")
	for _, nb := range bands {
		fmt.Fprintf(tw, "\t%s", nb.Name)
	}
	fmt.Fprintln(tw)

	for _, win := range course {
		fmt.Fprintf(tw, "%.2f-%.2f", win.Start, win.End)
		for _, p := range win.Powers {
			fmt.Fprintf(tw, "\t%.4f", p)
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}
