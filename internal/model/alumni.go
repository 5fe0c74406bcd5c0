// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data, similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Alumni is the in-memory shape of one alumni record.
//
// It carries no struct tags. The wire and on-disk format is Record, and the
// two are converted with ToRecord / ToAlumni.
//
// An ID of 0 marks an invalid record. Search skips those; every other
// operation treats them like any other record.
type Alumni struct {
	ID         int
	Name       string
	Department string
	Year       int
	Email      string
	Phone      string
	Address    string // used as "location" when filtering
	Job        string
	Company    string
	CGPA       float64
}

// Record is the external projection of an Alumni.
//
// The `json:"..."` tags fix the exact key names and casing used on the wire
// and in the backing file. encoding/json emits struct fields in declaration
// order, so the field order below IS the key order clients see.
//
// DECODING IS CASE-INSENSITIVE:
// encoding/json matches incoming keys to tags case-insensitively, so a body
// with "name" or "cgpa" decodes into Name / CGPA just like "Name" / "CGPA".
// Missing keys simply leave the zero value ("" / 0 / 0.0).
//
// NUMBERS MAY BE QUOTED:
// ID, Year and CGPA accept either a JSON number or a string holding one
// ("Year": "2024"), so a hand-edited Database.json still loads. See
// UnmarshalJSON.
type Record struct {
	ID         int     `json:"ID"`
	Name       string  `json:"Name"`
	Department string  `json:"Department"`
	Year       int     `json:"Year"`
	Email      string  `json:"Email"`
	Phone      string  `json:"Phone"`
	Address    string  `json:"Address"`
	Job        string  `json:"Job"`
	Company    string  `json:"Company"`
	CGPA       float64 `json:"CGPA"`
}

// UnmarshalJSON decodes a record, accepting ID, Year and CGPA as numbers or
// numeric strings. A fractional ID or Year is truncated toward zero.
func (r *Record) UnmarshalJSON(data []byte) error {
	// plain has Record's fields but not this method, so decoding into it
	// does not recurse. The outer fields shadow the embedded ones.
	type plain Record
	var aux struct {
		plain
		ID   json.Number `json:"ID"`
		Year json.Number `json:"Year"`
		CGPA json.Number `json:"CGPA"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	id, err := numberToInt("ID", aux.ID)
	if err != nil {
		return err
	}
	year, err := numberToInt("Year", aux.Year)
	if err != nil {
		return err
	}
	cgpa, err := numberToFloat("CGPA", aux.CGPA)
	if err != nil {
		return err
	}

	*r = Record(aux.plain)
	r.ID, r.Year, r.CGPA = id, year, cgpa
	return nil
}

func numberToInt(field string, n json.Number) (int, error) {
	if n == "" {
		return 0, nil
	}
	if i, err := strconv.Atoi(n.String()); err == nil {
		return i, nil
	}
	f, err := numberToFloat(field, n)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func numberToFloat(field string, n json.Number) (float64, error) {
	if n == "" {
		return 0, nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("model: %s: %w", field, err)
	}
	return f, nil
}

// ContactCard is the minimal contact view returned by /contact.
type ContactCard struct {
	ID    int    `json:"ID"`
	Name  string `json:"Name"`
	Email string `json:"Email"`
	Phone string `json:"Phone"`
}

// ToRecord projects an Alumni onto its wire shape.
func ToRecord(a Alumni) Record {
	return Record{
		ID:         a.ID,
		Name:       a.Name,
		Department: a.Department,
		Year:       a.Year,
		Email:      a.Email,
		Phone:      a.Phone,
		Address:    a.Address,
		Job:        a.Job,
		Company:    a.Company,
		CGPA:       a.CGPA,
	}
}

// ToAlumni converts a wire record back into the internal shape.
func (r Record) ToAlumni() Alumni {
	return Alumni{
		ID:         r.ID,
		Name:       r.Name,
		Department: r.Department,
		Year:       r.Year,
		Email:      r.Email,
		Phone:      r.Phone,
		Address:    r.Address,
		Job:        r.Job,
		Company:    r.Company,
		CGPA:       r.CGPA,
	}
}

// ToContactCard returns the contact subset of a.
func ToContactCard(a Alumni) ContactCard {
	return ContactCard{ID: a.ID, Name: a.Name, Email: a.Email, Phone: a.Phone}
}

// ToRecords projects a whole collection. It never returns nil, so an empty
// collection encodes as [] rather than null.
func ToRecords(list []Alumni) []Record {
	out := make([]Record, 0, len(list))
	for _, a := range list {
		out = append(out, ToRecord(a))
	}
	return out
}
