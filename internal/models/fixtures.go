package models

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

// fixtureFiles is a minimal but complete static feed: one agency, two
// routes, a five-stop line, and trips on both directions plus one trip
// without a direction_id so inference has work to do.
var fixtureFiles = map[string]string{
	"agency.txt": "agency_id,agency_name,agency_url,agency_timezone,agency_lang,agency_phone,agency_email,agency_fare_url\n" +
		"gl,Gridline Transit,https://gridline.example.com,America/Los_Angeles,en,555-0100,info@gridline.example.com,https://gridline.example.com/fares\n",
	"routes.txt": "route_id,agency_id,route_short_name,route_long_name,route_desc,route_type,route_url,route_color,route_text_color\n" +
		"r10,gl,10,Harbor Line,,3,,0066CC,FFFFFF\n" +
		"r20,gl,20,Hill Line,,3,,CC3300,FFFFFF\n",
	"stops.txt": "stop_id,stop_code,stop_name,stop_lat,stop_lon,parent_station\n" +
		"s1,101,First & Main,47.600,-122.340,\n" +
		"s2,102,Second & Main,47.600,-122.330,\n" +
		"s3,103,Third & Main,47.600,-122.320,\n" +
		"s4,104,Fourth & Main,47.600,-122.310,\n" +
		"s5,105,Fifth & Main,47.600,-122.300,\n",
	"calendar.txt": "service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date\n" +
		"wk,1,1,1,1,1,0,0,20250101,20261231\n" +
		"sat,0,0,0,0,0,1,0,20250101,20261231\n",
	"trips.txt": "route_id,service_id,trip_id,trip_headsign,direction_id,shape_id\n" +
		"r10,wk,t1,Fifth & Main,0,sh1\n" +
		"r10,wk,t2,First & Main,1,sh1\n" +
		"r10,wk,t3,Fifth & Main,,sh1\n" +
		"r10,sat,t4,Fifth & Main,0,sh1\n" +
		"r20,wk,t5,Third & Main,0,\n",
	"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence,pickup_type,drop_off_type\n" +
		"t1,08:00:00,08:00:00,s1,1,0,0\n" +
		"t1,08:05:00,08:05:00,s2,2,0,0\n" +
		"t1,08:10:00,08:10:00,s3,3,0,0\n" +
		"t1,08:15:00,08:15:00,s4,4,0,0\n" +
		"t1,08:20:00,08:20:00,s5,5,0,0\n" +
		"t2,09:00:00,09:00:00,s5,1,0,0\n" +
		"t2,09:05:00,09:05:00,s4,2,0,0\n" +
		"t2,09:10:00,09:10:00,s3,3,0,0\n" +
		"t2,09:15:00,09:15:00,s2,4,0,0\n" +
		"t2,09:20:00,09:20:00,s1,5,0,0\n" +
		"t3,10:00:00,10:00:00,s1,1,0,0\n" +
		"t3,10:05:00,10:05:00,s2,2,0,0\n" +
		"t3,10:10:00,10:10:00,s3,3,0,0\n" +
		"t3,10:15:00,10:15:00,s4,4,0,0\n" +
		"t3,10:20:00,10:20:00,s5,5,0,0\n" +
		"t4,11:00:00,11:00:00,s1,1,0,0\n" +
		"t4,11:05:00,11:05:00,s3,2,0,0\n" +
		"t4,11:10:00,11:10:00,s5,3,0,0\n" +
		"t5,07:00:00,07:00:00,s1,1,0,0\n" +
		"t5,07:04:00,07:04:00,s2,2,0,0\n" +
		"t5,07:08:00,07:08:00,s3,3,0,0\n",
	"shapes.txt": "shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence\n" +
		"sh1,47.600,-122.340,1\n" +
		"sh1,47.601,-122.330,2\n" +
		"sh1,47.600,-122.320,3\n" +
		"sh1,47.601,-122.310,4\n" +
		"sh1,47.600,-122.300,5\n",
}

// GetFixturePath writes the test feed as a GTFS zip under the test's
// temp directory and returns its path.
func GetFixturePath(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture zip: %v", err)
	}

	w := zip.NewWriter(f)
	for name, body := range fixtureFiles {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatalf("adding %s to fixture zip: %v", name, err)
		}
		if _, err := entry.Write([]byte(body)); err != nil {
			t.Fatalf("writing %s to fixture zip: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing fixture zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing fixture file: %v", err)
	}
	return path
}
