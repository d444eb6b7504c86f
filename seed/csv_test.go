package seed_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geantfroid/sav-engine/catalog"
	"github.com/geantfroid/sav-engine/seed"
)

// codificationCSV mirrors the legacy sheet's layout: product-type header
// rows and model names in column 2, fault/cause/fix data in columns 3..8,
// with repeated in-sheet headers and duplicated combinations.
const codificationCSV = `,,REFREGERATEUR,,,,,,
,,,CODE PANNE,PANNE,CODE CAUSE,CAUSE,CODE SOLUTION,SOLUTION
,,GF-240,REF-01,NE REFROIDIT PAS,C-01,COMPRESSEUR HS,S-01,REMPLACER COMPRESSEUR
,,,REF-01,NE REFROIDIT PAS,C-02,FUITE DE GAZ,S-02,RECHARGER GAZ
,,GF-240,REF-02,BRUIT,C-03,VENTILATEUR DESSERRE,,
,,GF-320,REF-01,NE REFROIDIT PAS,C-01,COMPRESSEUR HS,,
,,CONGELATEUR,,,,,,
,,GC-110,CON-01,NE CONGELE PAS,C-10,THERMOSTAT HS,S-10,REMPLACER THERMOSTAT
,,NO FROST INVERTER,,,,,,
,,NF-100,REF-99,JAMAIS CONVERTI,C-99,X,S-99,Y
`

func TestFromReader_ConvertsLegacySheet(t *testing.T) {
	snap, err := seed.FromReader(strings.NewReader(codificationCSV))
	require.NoError(t, err)

	require.Len(t, snap.Families, 1)
	assert.Equal(t, "FROID", snap.Families[0].Name)

	require.Len(t, snap.Products, 2)
	assert.Equal(t, "RÉFRIGÉRATEUR", snap.Products[0].Name)
	assert.Equal(t, "CONGÉLATEUR", snap.Products[1].Name)

	// GF-240 appears on two rows but is one model.
	require.Len(t, snap.Models, 3)
	assert.Equal(t, "GF-240", snap.Models[0].Name)
	assert.Equal(t, "GF-320", snap.Models[1].Name)
	assert.Equal(t, "GC-110", snap.Models[2].Name)
	assert.Equal(t, snap.Products[1].ID, snap.Models[2].ProductID)
}

func TestFromReader_DeduplicatesFaultsAndCauses(t *testing.T) {
	snap, err := seed.FromReader(strings.NewReader(codificationCSV))
	require.NoError(t, err)

	// "NE REFROIDIT PAS" occurs on three rows for the same product.
	require.Len(t, snap.Faults, 3)
	assert.Equal(t, "NE REFROIDIT PAS", snap.Faults[0].Name)
	assert.Equal(t, "BRUIT", snap.Faults[1].Name)
	assert.Equal(t, "NE CONGELE PAS", snap.Faults[2].Name)

	// "COMPRESSEUR HS" repeats under the same fault.
	require.Len(t, snap.Causes, 4)

	// The repeated combination carried no fix, so no duplicate fix either.
	require.Len(t, snap.Fixes, 3)
}

func TestFromReader_StopsAtUnfinishedSection(t *testing.T) {
	snap, err := seed.FromReader(strings.NewReader(codificationCSV))
	require.NoError(t, err)

	for _, f := range snap.Faults {
		assert.NotEqual(t, "JAMAIS CONVERTI", f.Name)
	}
	for _, m := range snap.Models {
		assert.NotEqual(t, "NF-100", m.Name)
	}
}

func TestFromReader_IncludesDefaultAdmin(t *testing.T) {
	snap, err := seed.FromReader(strings.NewReader(codificationCSV))
	require.NoError(t, err)

	require.Len(t, snap.Users, 1)
	assert.Equal(t, "admin", snap.Users[0].Username)
	assert.Equal(t, catalog.RoleAdmin, snap.Users[0].Role)
}

func TestFromReader_NormalizesProductSpellings(t *testing.T) {
	csv := `,,FONAINE FRECH,,,,,,
,,FF-10,FON-01,NE COULE PAS,C-01,POMPE HS,S-01,REMPLACER POMPE
,,REFREGERATEUR PRESONTOIR,,,,,,
,,VP-60,REF-10,VITRE CASSEE,C-20,CHOC,S-20,REMPLACER VITRE
`
	snap, err := seed.FromReader(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, snap.Products, 2)
	assert.Equal(t, "FONTAINE FRAÎCHE", snap.Products[0].Name)
	assert.Equal(t, "RÉFRIGÉRATEUR PRÉSENTOIR", snap.Products[1].Name)
}

func TestFromReader_ResolvesEndToEnd(t *testing.T) {
	// The converted snapshot must answer the cascading entry-surface
	// queries directly.
	snap, err := seed.FromReader(strings.NewReader(codificationCSV))
	require.NoError(t, err)

	r := catalog.NewResolver(snap)
	fridge := snap.Products[0]

	causes := r.CausesOf("NE REFROIDIT PAS", fridge.ID)
	require.Len(t, causes, 2)
	assert.Equal(t, "REMPLACER COMPRESSEUR", r.FixFor("COMPRESSEUR HS", "NE REFROIDIT PAS", fridge.ID))
	assert.Equal(t, "", r.FixFor("VENTILATEUR DESSERRE", "BRUIT", fridge.ID))
}
