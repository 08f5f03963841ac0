package resolver

import (
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-lv2/lv2vst/pkg/lv2model"
	"github.com/go-lv2/lv2vst/pkg/rdfworld"
)

type fakeOpener struct{ missing map[string]bool }

func (f *fakeOpener) HasSymbol(path, symbol string) (bool, error) {
	if f.missing[path] {
		return false, nil
	}
	return true, nil
}

func ampWorld() *rdfworld.MemWorld {
	w := rdfworld.NewMemWorld()
	const uri = "urn:test:amp"
	w.Add(rdfworld.Triple{Subject: uri, Predicate: rdfworld.RDFType, Object: rdfworld.Term{Value: rdfworld.LV2Plugin}})
	w.Add(rdfworld.Triple{Subject: uri, Predicate: rdfworld.RDFSLabel, Object: rdfworld.Term{Value: "Test Amp", IsLiteral: true}})
	w.Add(rdfworld.Triple{Subject: uri, Predicate: rdfworld.LV2Binary, Object: rdfworld.Term{Value: "amp.so"}})
	w.Add(rdfworld.Triple{Subject: uri, Predicate: rdfworld.LV2Port, Object: rdfworld.Term{Value: "_:gain"}})

	w.Add(rdfworld.Triple{Subject: "_:gain", Predicate: rdfworld.RDFType, Object: rdfworld.Term{Value: rdfworld.LV2InputPort}})
	w.Add(rdfworld.Triple{Subject: "_:gain", Predicate: rdfworld.RDFType, Object: rdfworld.Term{Value: rdfworld.LV2ControlPort}})
	w.Add(rdfworld.Triple{Subject: "_:gain", Predicate: rdfworld.LV2Symbol, Object: rdfworld.Term{Value: "gain", IsLiteral: true}})
	w.Add(rdfworld.Triple{Subject: "_:gain", Predicate: rdfworld.LV2Name, Object: rdfworld.Term{Value: "Gain", IsLiteral: true}})
	w.Add(rdfworld.Triple{Subject: "_:gain", Predicate: rdfworld.LV2Default, Object: rdfworld.Term{Value: "0.5", IsLiteral: true}})
	w.Add(rdfworld.Triple{Subject: "_:gain", Predicate: rdfworld.LV2Minimum, Object: rdfworld.Term{Value: "0", IsLiteral: true}})
	w.Add(rdfworld.Triple{Subject: "_:gain", Predicate: rdfworld.LV2Maximum, Object: rdfworld.Term{Value: "1", IsLiteral: true}})

	w.SetBundleDir(uri, "/bundles/amp.lv2")
	return w
}

func TestResolveByURIIdentifiesByCRC(t *testing.T) {
	r := New(ampWorld(), &fakeOpener{})
	d, err := r.ResolveByURI("urn:test:amp", []string{"/bundles/amp.lv2"})
	require.NoError(t, err)

	want := crc32.ChecksumIEEE([]byte("urn:test:amp")) & idMask
	assert.Equal(t, want, d.ID)
	assert.Equal(t, "Test Amp", d.Name)
	assert.Equal(t, "/bundles/amp.lv2/amp.so", d.DSPPath)
	assert.Equal(t, 1, d.Counts.ControlIn)
	assert.Equal(t, uint32(lv2model.MinAtomBufSizFloor), d.MinAtomBufSiz)
}

func TestResolveByIDMatchesResolveByURI(t *testing.T) {
	world := ampWorld()
	byURI, err := New(world, &fakeOpener{}).ResolveByURI("urn:test:amp", nil)
	require.NoError(t, err)

	byID, err := New(ampWorld(), &fakeOpener{}).ResolveByID(byURI.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, byURI.DSPURI, byID.DSPURI)
	assert.Equal(t, byURI.ID, byID.ID)
}

func TestResolveFailsWhenDSPBinaryMissingSymbol(t *testing.T) {
	r := New(ampWorld(), &fakeOpener{missing: map[string]bool{"/bundles/amp.lv2/amp.so": true}})
	_, err := r.ResolveByURI("urn:test:amp", nil)
	require.Error(t, err)
	var unsupported *ErrUnsupported
	assert.ErrorAs(t, err, &unsupported)
}

func TestResolveFailsOnUnsupportedRequiredFeature(t *testing.T) {
	w := ampWorld()
	w.Add(rdfworld.Triple{Subject: "urn:test:amp", Predicate: rdfworld.LV2RequiredFeature, Object: rdfworld.Term{Value: "urn:test:exotic-feature"}})
	_, err := New(w, &fakeOpener{}).ResolveByURI("urn:test:amp", nil)
	require.Error(t, err)
}

func TestEnumerateAppliesWhitelistAndBlacklist(t *testing.T) {
	w := rdfworld.NewMemWorld()
	add := func(uri string) {
		w.Add(rdfworld.Triple{Subject: uri, Predicate: rdfworld.RDFType, Object: rdfworld.Term{Value: rdfworld.LV2Plugin}})
		w.Add(rdfworld.Triple{Subject: uri, Predicate: rdfworld.RDFSLabel, Object: rdfworld.Term{Value: uri, IsLiteral: true}})
		w.Add(rdfworld.Triple{Subject: uri, Predicate: rdfworld.LV2Binary, Object: rdfworld.Term{Value: uri + ".so"}})
		w.Add(rdfworld.Triple{Subject: uri, Predicate: rdfworld.LV2Port, Object: rdfworld.Term{Value: "_:" + uri + "-p"}})
		w.Add(rdfworld.Triple{Subject: "_:" + uri + "-p", Predicate: rdfworld.RDFType, Object: rdfworld.Term{Value: rdfworld.LV2InputPort}})
		w.Add(rdfworld.Triple{Subject: "_:" + uri + "-p", Predicate: rdfworld.RDFType, Object: rdfworld.Term{Value: rdfworld.LV2ControlPort}})
		w.SetBundleDir(uri, "/bundles/shell.lv2")
	}
	add("urn:test:a")
	add("urn:test:a.broken")
	add("urn:test:b")
	add("urn:test:c")

	r := New(w, &fakeOpener{})
	out, err := r.Enumerate([]string{"/bundles/shell.lv2"},
		[]string{"urn:test:a", "urn:test:b"},
		[]string{"urn:test:a.broken"})
	require.NoError(t, err)

	var uris []string
	for _, e := range out {
		uris = append(uris, e.URI)
	}
	assert.ElementsMatch(t, []string{"urn:test:a", "urn:test:b"}, uris)
}
