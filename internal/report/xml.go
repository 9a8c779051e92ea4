// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package report

import (
	"encoding/xml"
	"io"
	"sort"
)

// xmlReport mirrors the Open-PSA Model Exchange Format's <report>
// results shape closely enough for downstream tooling already written
// against it, without attempting full MEF compliance (parsing MEF
// input is out of scope per SPEC_FULL.md §9).
type xmlReport struct {
	XMLName       xml.Name         `xml:"report"`
	RunID         string           `xml:"run-id,attr"`
	Model         string           `xml:"model,attr"`
	Engine        string           `xml:"engine,attr"`
	Mode          string           `xml:"mode,attr"`
	MissionTime   float64          `xml:"mission-time,attr"`
	SumOfProducts xmlSumOfProducts `xml:"sum-of-products"`
	Importance    []xmlImportance  `xml:"importance>basic-event,omitempty"`
	Uncertainty   *xmlUncertainty  `xml:"uncertainty,omitempty"`
	SIL           *xmlSIL          `xml:"sil,omitempty"`
	TimeSeries    []xmlSample      `xml:"time-series>sample,omitempty"`
	Warnings      []xmlWarning     `xml:"warnings>warning,omitempty"`
}

type xmlSumOfProducts struct {
	Probability float64      `xml:"probability,attr"`
	Products    []xmlProduct `xml:"product"`
}

type xmlProduct struct {
	Order        int      `xml:"order,attr"`
	Probability  float64  `xml:"probability,attr"`
	Contribution float64  `xml:"contribution,attr"`
	Literals     []string `xml:"literal"`
}

type xmlSample struct {
	Time        float64 `xml:"t,attr"`
	Probability float64 `xml:"p,attr"`
}

type xmlImportance struct {
	Name string  `xml:"name,attr"`
	MIF  float64 `xml:"mif,attr"`
	CIF  float64 `xml:"cif,attr"`
	DIF  float64 `xml:"dif,attr"`
	RRW  float64 `xml:"rrw,attr"`
	RAW  float64 `xml:"raw,attr"`
}

type xmlUncertainty struct {
	NumTrials int     `xml:"num-trials,attr"`
	Seed      uint64  `xml:"seed,attr"`
	Mean      float64 `xml:"mean,attr"`
	StdDev    float64 `xml:"std-dev,attr"`
}

type xmlSIL struct {
	Buckets        int     `xml:"buckets,attr"`
	PFH            float64 `xml:"pfh,attr"`
	PFHApproximate bool    `xml:"pfh-approximate,attr"`
}

type xmlWarning struct {
	Kind    string `xml:"kind,attr"`
	Message string `xml:",chardata"`
}

// WriteXML renders r as Open-PSA-flavored XML to w, indented two
// spaces per level, preceded by the standard XML declaration.
func WriteXML(w io.Writer, r Report) error {
	out := xmlReport{
		RunID:       r.RunID,
		Model:       r.ModelName,
		Engine:      r.Engine,
		Mode:        r.Mode,
		MissionTime: r.MissionTime,
		SumOfProducts: xmlSumOfProducts{
			Probability: r.TopEvent.Probability,
		},
	}
	for i, p := range r.Products {
		out.SumOfProducts.Products = append(out.SumOfProducts.Products, xmlProduct{
			Order:        i + 1,
			Probability:  p.Probability,
			Contribution: p.Contribution,
			Literals:     p.Literals,
		})
	}
	names := make([]string, 0, len(r.Importance))
	for name := range r.Importance {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		m := r.Importance[name]
		out.Importance = append(out.Importance, xmlImportance{Name: name, MIF: m.MIF, CIF: m.CIF, DIF: m.DIF, RRW: m.RRW, RAW: m.RAW})
	}
	if r.Uncertainty != nil {
		out.Uncertainty = &xmlUncertainty{
			NumTrials: r.Uncertainty.NumTrials,
			Seed:      r.Uncertainty.Seed,
			Mean:      r.Uncertainty.Mean,
			StdDev:    r.Uncertainty.StdDev,
		}
	}
	if r.SIL != nil {
		out.SIL = &xmlSIL{Buckets: r.SIL.Buckets, PFH: r.SIL.PFH, PFHApproximate: r.SIL.PFHApproximate}
	}
	for _, s := range r.TimeSeries {
		out.TimeSeries = append(out.TimeSeries, xmlSample{Time: s.T, Probability: s.P})
	}
	for _, warn := range r.Warnings {
		out.Warnings = append(out.Warnings, xmlWarning{Kind: warn.Kind, Message: warn.Message})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
