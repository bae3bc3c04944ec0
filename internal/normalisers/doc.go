// Package normalisers provides implementations of the TextNormaliser
// interface. Each normaliser turns raw annotation text into the cleaned form
// used for modelling and exploratory analysis.
//
// Normalisers are deliberately light: they never remove stopwords or
// punctuation and never stem or lemmatise, so affect signals survive.
package normalisers
