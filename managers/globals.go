// vi: sw=4 ts=4:

/*

	Mnemonic:	globals
	Abstract:	Package level state for the managers package: the bleater sheep
				for each manager and the environment lookup helper. The
				shared singletons (C3/C4/C5, the coordinator client, the
				static-db pool) are not kept here; main constructs them once
				and passes them down by shared reference.
	Date:		31 July 2026
	Author:		Aspen team

	Mods:		Environment variables stand in for a config-file-section lookup
				since this service has no -C config file of its own.
*/

package managers

import (
	"os"

	"github.com/att/gopkgs/bleater"
)

var (
	mgr_sheep   *bleater.Bleater // master sheep for the managers package
	ing_sheep   *bleater.Bleater // C7 ingestion RPC
	qry_sheep   *bleater.Bleater // C8 query RPC
	enr_sheep   *bleater.Bleater // C6 enrichment pool
	coord_sheep *bleater.Bleater // C9 coordinator client / leader loop
	store_sheep *bleater.Bleater // C3/C4 stores
	queue_sheep *bleater.Bleater // C5 work queue
	db_sheep    *bleater.Bleater // static database pool
)

func init() {
	mgr_sheep = bleater.Mk_bleater(1, os.Stderr)
	mgr_sheep.Set_prefix("aspen-mgr")

	ing_sheep = bleater.Mk_bleater(1, os.Stderr)
	ing_sheep.Set_prefix("ingest")
	mgr_sheep.Add_child(ing_sheep)

	qry_sheep = bleater.Mk_bleater(1, os.Stderr)
	qry_sheep.Set_prefix("query")
	mgr_sheep.Add_child(qry_sheep)

	enr_sheep = bleater.Mk_bleater(1, os.Stderr)
	enr_sheep.Set_prefix("enrich")
	mgr_sheep.Add_child(enr_sheep)

	coord_sheep = bleater.Mk_bleater(1, os.Stderr)
	coord_sheep.Set_prefix("coord")
	mgr_sheep.Add_child(coord_sheep)

	store_sheep = bleater.Mk_bleater(1, os.Stderr)
	store_sheep.Set_prefix("store")
	mgr_sheep.Add_child(store_sheep)

	queue_sheep = bleater.Mk_bleater(1, os.Stderr)
	queue_sheep.Set_prefix("queue")
	mgr_sheep.Add_child(queue_sheep)

	db_sheep = bleater.Mk_bleater(1, os.Stderr)
	db_sheep.Set_prefix("staticdb")
	mgr_sheep.Add_child(db_sheep)
}

/*
	Get_sheep returns the managers package's master sheep so that main can
	attach it to the top level sheep and control the whole fleet's verbosity
	with one knob.
*/
func Get_sheep() *bleater.Bleater {
	return mgr_sheep
}

/*
	Set_bleat_level adjusts every manager's sheep at once.
*/
func Set_bleat_level(v uint) {
	mgr_sheep.Set_level(v)
}

/*
	Env_or_default reads an environment variable, falling back to def if it
	is unset or empty.
*/
func Env_or_default(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}
