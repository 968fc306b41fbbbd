package goquery_test

func fp(v float64) *float64 { return &v }

func ip(v int) *int { return &v }
