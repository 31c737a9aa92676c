/*
Package intent classifies free text into coarse intent tags and picks
response templates for them.

The classifier is a multinomial naive-Bayes model over unigram+bigram
features, trained offline from a JSON corpus of tag → patterns and
tag → responses. The fitted model and the template table persist as a
single artifact so both stay version-consistent.
*/
package intent
