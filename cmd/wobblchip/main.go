// Command wobblchip synthesizes oscillator gates into SPICE netlists.
//
//	wobblchip list
//	wobblchip synth AND HA --format netlist > gates.sp
//	wobblchip synth --hdl mygates.gate --stages 11 --format assign
//
package main

import (
	"flag"
	"os"

	"github.com/plan-systems/klog"
)

func main() {
	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
	})

	root := newRootCmd()
	root.PersistentFlags().AddGoFlagSet(fset)
	err := root.Execute()
	klog.Flush()
	if err != nil {
		os.Exit(1)
	}
}
