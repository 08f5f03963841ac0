// Command lv2vstinfo is a diagnostic CLI for verifying that a bundle
// resolves cleanly before loading it into a DAW: it drives pkg/resolver
// exactly the way the bridge does at VSTPluginMain time and prints the
// resulting PluginDescriptor, or every enumerable plugin if no single
// URI was requested.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/go-lv2/lv2vst/internal/logging"
	"github.com/go-lv2/lv2vst/pkg/dynload"
	"github.com/go-lv2/lv2vst/pkg/lv2model"
	"github.com/go-lv2/lv2vst/pkg/rdfworld"
	"github.com/go-lv2/lv2vst/pkg/resolver"
)

func main() {
	var (
		bundles   = pflag.StringArrayP("bundle", "b", nil, "LV2 bundle directory to load (repeatable); default is the system-wide LV2 world")
		uri       = pflag.StringP("uri", "u", "", "resolve a single plugin by URI instead of enumerating")
		whitelist = pflag.StringArray("whitelist", nil, "URI prefix to allow during enumeration (repeatable)")
		blacklist = pflag.StringArray("blacklist", nil, "URI prefix to reject during enumeration (repeatable)")
		verbose   = pflag.BoolP("verbose", "v", false, "enable debug logging")
	)
	pflag.Parse()

	if *verbose {
		logging.Default().SetLevel(logging.LevelDebug)
	}

	r := resolver.New(rdfworld.NewTurtleWorld(), dynload.Opener{})

	if *uri != "" {
		desc, err := r.ResolveByURI(*uri, *bundles)
		if err != nil {
			fmt.Fprintln(os.Stderr, "lv2vstinfo:", err)
			os.Exit(1)
		}
		printDescriptor(desc)
		return
	}

	entries, err := r.Enumerate(*bundles, *whitelist, *blacklist)
	if err != nil {
		fmt.Fprintln(os.Stderr, "lv2vstinfo:", err)
		os.Exit(1)
	}
	if len(entries) == 0 {
		fmt.Println("no plugins found")
		return
	}
	for _, e := range entries {
		fmt.Printf("0x%08x  %-50s %s\n", e.ID, e.URI, e.Name)
	}
}

func printDescriptor(d *lv2model.PluginDescriptor) {
	fmt.Printf("name:            %s\n", d.Name)
	fmt.Printf("vendor:          %s\n", d.Vendor)
	fmt.Printf("uri:             %s\n", d.DSPURI)
	fmt.Printf("id:              0x%08x\n", d.ID)
	fmt.Printf("dsp path:        %s\n", d.DSPPath)
	if d.GUIURI != "" {
		fmt.Printf("ui uri:          %s\n", d.GUIURI)
		fmt.Printf("ui path:         %s\n", d.GUIPath)
	}
	fmt.Printf("category:        %d\n", d.Category)
	fmt.Printf("ports:           %d (in %d/%d ctrl, %d/%d audio, %d/%d midi, %d/%d atom out)\n",
		d.Counts.Total(), d.Counts.ControlIn, d.Counts.ControlOut,
		d.Counts.AudioIn, d.Counts.AudioOut, d.Counts.MidiIn, d.Counts.MidiOut, d.Counts.AtomIn, d.Counts.AtomOut)
	fmt.Printf("eligible params: %d\n", d.NumEligibleParams())
	fmt.Printf("min atom bufsiz: %d\n", d.MinAtomBufSiz)
	fmt.Printf("send_time_info:  %v\n", d.SendTimeInfo)
	fmt.Printf("state interface: %v\n", d.HasStateInterface)
}
