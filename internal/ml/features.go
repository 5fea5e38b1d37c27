package ml

// CategoricalFeatures is the number of leading scalar features in a feature
// row before the skills vector: degree code, branch code and GPA.
const CategoricalFeatures = 3

// AssembleFeatures combines the encoded categorical values, the GPA scalar
// and the skills vector into one feature row. The row width must match the
// width the classifier was fitted on; the two only line up when encoder and
// classifier come from the same training run.
func AssembleFeatures(degreeCode, branchCode int, gpa float64, skillsVector []float64) []float64 {
	row := make([]float64, 0, CategoricalFeatures+len(skillsVector))
	row = append(row, float64(degreeCode), float64(branchCode), gpa)
	row = append(row, skillsVector...)
	return row
}

// FeatureWidth is the row width produced for a vocabulary of the given size.
func FeatureWidth(vocabularySize int) int {
	return CategoricalFeatures + vocabularySize
}
