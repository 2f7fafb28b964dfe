// vi: sw=4 ts=4:

/*

	Mnemonic:	init
	Abstract:	Package level initialisation for the data model objects (Chateau,
				DedupIndex, AspenisedArtifact, ...) that the managers package
				builds on.
	Date:		31 July 2026
	Author:		Aspen team
*/

package gizmos

import (
	"os"

	"github.com/att/gopkgs/bleater"
)

var (
	obj_sheep *bleater.Bleater // sheep that gizmos objects bleat through
)

/*
	Initialisation for the package; run once automatically at startup.
*/
func init() {
	obj_sheep = bleater.Mk_bleater(0, os.Stderr)
	obj_sheep.Set_prefix("gizmos")
}

/*
	Returns the package's sheep so that main can attach it to the
	master sheep and thus affect the volume of bleats from this package.
*/
func Get_sheep() *bleater.Bleater {
	return obj_sheep
}

/*
	Provides the external world with a way to adjust the bleat level for gizmos.
*/
func Set_bleat_level(v uint) {
	obj_sheep.Set_level(v)
}
