package quizengine

import (
	"github.com/yourusername/iqtest-api/internal/domain/entity"
)

// Built-in question catalogs, one per level. Compiled into the binary and
// treated as immutable; the bank hands out copies of slices, never mutates.

func defaultCatalogs() map[string][]entity.Question {
	return map[string][]entity.Question{
		LevelBasic:        basicCatalog(),
		LevelIntermediate: intermediateCatalog(),
		LevelAdvanced:     advancedCatalog(),
		LevelExpert:       expertCatalog(),
	}
}

func mc(id string, qt entity.QuestionType, difficulty int, prompt string, options []string, correct int, timeLimit, points int, category string) entity.Question {
	return entity.Question{
		ID: id, Kind: entity.KindMultipleChoice, Type: qt, Difficulty: difficulty,
		Prompt: prompt, Options: options, CorrectOption: correct,
		TimeLimitSec: timeLimit, Points: points, Category: category,
	}
}

func tf(id string, qt entity.QuestionType, difficulty int, prompt string, correct bool, timeLimit, points int, category string) entity.Question {
	return entity.Question{
		ID: id, Kind: entity.KindTrueFalse, Type: qt, Difficulty: difficulty,
		Prompt: prompt, CorrectBool: correct,
		TimeLimitSec: timeLimit, Points: points, Category: category,
	}
}

func num(id string, qt entity.QuestionType, difficulty int, prompt string, correct float64, timeLimit, points int, category string) entity.Question {
	return entity.Question{
		ID: id, Kind: entity.KindNumerical, Type: qt, Difficulty: difficulty,
		Prompt: prompt, CorrectValue: correct,
		TimeLimitSec: timeLimit, Points: points, Category: category,
	}
}

func basicCatalog() []entity.Question {
	return []entity.Question{
		mc("bas-01", entity.TypeLogical, 1, "Complete a sequência: 2, 4, 6, 8, ...",
			[]string{"9", "10", "12", "14"}, 1, 30, 5, "Lógica"),
		mc("bas-02", entity.TypeVerbal, 1, "Qual palavra não pertence ao grupo?",
			[]string{"Cão", "Gato", "Cadeira", "Cavalo"}, 2, 30, 5, "Verbal"),
		num("bas-03", entity.TypeNumerical, 2, "Quanto é 7 × 8?",
			56, 30, 5, "Matemática"),
		mc("bas-04", entity.TypeSpatial, 2, "Um cubo tem quantas faces?",
			[]string{"4", "6", "8", "12"}, 1, 30, 5, "Espacial"),
		tf("bas-05", entity.TypeLogical, 2, "Se todos os A são B e todos os B são C, então todos os A são C.",
			true, 30, 5, "Lógica"),
		mc("bas-06", entity.TypeVerbal, 2, "LIVRO está para LER assim como FACA está para:",
			[]string{"Cozinhar", "Cortar", "Afiar", "Guardar"}, 1, 40, 5, "Verbal"),
		num("bas-07", entity.TypeNumerical, 2, "Qual é o próximo número: 5, 10, 15, 20, ...?",
			25, 30, 5, "Matemática"),
		mc("bas-08", entity.TypeAbstract, 3, "Qual figura completa o padrão: círculo, quadrado, círculo, quadrado, ...?",
			[]string{"Triângulo", "Círculo", "Quadrado", "Losango"}, 1, 30, 5, "Padrões"),
		tf("bas-09", entity.TypeNumerical, 2, "Todo número par é divisível por 2.",
			true, 25, 5, "Matemática"),
		mc("bas-10", entity.TypeSpatial, 3, "Girando a letra 'N' 90 graus no sentido horário obtemos algo parecido com:",
			[]string{"Z", "S", "M", "W"}, 0, 40, 5, "Espacial"),
		num("bas-11", entity.TypeNumerical, 3, "Maria tem 12 maçãs e dá um terço delas. Com quantas fica?",
			8, 45, 5, "Matemática"),
		mc("bas-12", entity.TypeLogical, 3, "Complete: 1, 1, 2, 3, 5, 8, ...",
			[]string{"11", "12", "13", "15"}, 2, 45, 5, "Lógica"),
		tf("bas-13", entity.TypeVerbal, 2, "'Efêmero' significa algo duradouro.",
			false, 30, 5, "Verbal"),
		mc("bas-14", entity.TypeAbstract, 3, "Na série AB, CD, EF, a próxima dupla é:",
			[]string{"GH", "FG", "HI", "GI"}, 0, 30, 5, "Padrões"),
	}
}

func intermediateCatalog() []entity.Question {
	return []entity.Question{
		mc("int-01", entity.TypeLogical, 4, "Complete a sequência: 3, 6, 12, 24, ...",
			[]string{"36", "40", "48", "56"}, 2, 40, 8, "Lógica"),
		num("int-02", entity.TypeNumerical, 4, "Se 3x + 6 = 21, quanto vale x?",
			5, 45, 8, "Matemática"),
		mc("int-03", entity.TypeVerbal, 4, "MÉDICO está para HOSPITAL assim como PROFESSOR está para:",
			[]string{"Alunos", "Escola", "Livros", "Aula"}, 1, 40, 8, "Verbal"),
		mc("int-04", entity.TypeSpatial, 5, "Quantos cubos pequenos formam um cubo 3×3×3?",
			[]string{"9", "18", "27", "36"}, 2, 45, 8, "Espacial"),
		tf("int-05", entity.TypeLogical, 4, "Se nenhum X é Y e alguns Z são Y, então alguns Z não são X.",
			true, 50, 8, "Lógica"),
		num("int-06", entity.TypeNumerical, 5, "Qual é o próximo número: 2, 3, 5, 7, 11, ...?",
			13, 40, 8, "Matemática"),
		mc("int-07", entity.TypeAbstract, 5, "Na série 1A, 2B, 3C, 4D, o sexto termo é:",
			[]string{"5E", "6F", "6E", "5F"}, 1, 45, 8, "Padrões"),
		mc("int-08", entity.TypeVerbal, 5, "Qual é o antônimo de 'prolixo'?",
			[]string{"Extenso", "Conciso", "Confuso", "Eloquente"}, 1, 40, 8, "Verbal"),
		num("int-09", entity.TypeNumerical, 5, "Um trem percorre 180 km em 2 horas. Qual a velocidade média em km/h?",
			90, 45, 8, "Matemática"),
		tf("int-10", entity.TypeSpatial, 4, "A imagem espelhada da letra 'b' é a letra 'd'.",
			true, 30, 8, "Espacial"),
		mc("int-11", entity.TypeLogical, 5, "Complete: 81, 27, 9, 3, ...",
			[]string{"0", "1", "2", "1.5"}, 1, 45, 8, "Lógica"),
		mc("int-12", entity.TypeAbstract, 5, "Círculo grande, círculo médio, círculo pequeno, quadrado grande, quadrado médio, ... O próximo é:",
			[]string{"Quadrado pequeno", "Círculo grande", "Triângulo grande", "Quadrado grande"}, 0, 45, 8, "Padrões"),
		num("int-13", entity.TypeNumerical, 6, "Quanto é 15% de 240?",
			36, 45, 8, "Matemática"),
		mc("int-14", entity.TypeVerbal, 5, "Escolha o par análogo a SEMENTE : ÁRVORE",
			[]string{"Folha : Raiz", "Ovo : Ave", "Fruto : Flor", "Tronco : Galho"}, 1, 45, 8, "Verbal"),
		tf("int-15", entity.TypeLogical, 5, "Se alguns A são B, então necessariamente alguns B são A.",
			true, 50, 8, "Lógica"),
		mc("int-16", entity.TypeSpatial, 6, "Dobrando um quadrado de papel duas vezes ao meio, quantas camadas se formam?",
			[]string{"2", "3", "4", "8"}, 2, 45, 8, "Espacial"),
		num("int-17", entity.TypeNumerical, 6, "A sequência 1, 4, 9, 16, 25 continua com:",
			36, 40, 8, "Matemática"),
	}
}

func advancedCatalog() []entity.Question {
	return []entity.Question{
		mc("adv-01", entity.TypeLogical, 6, "Complete: 2, 6, 12, 20, 30, ...",
			[]string{"40", "42", "44", "46"}, 1, 50, 10, "Lógica"),
		num("adv-02", entity.TypeNumerical, 6, "Se x² = 144 e x > 0, quanto vale x?",
			12, 45, 10, "Matemática"),
		mc("adv-03", entity.TypeAbstract, 7, "Na matriz 3×3 cada linha soma 15. Se uma linha tem 4 e 8, o terceiro valor é:",
			[]string{"2", "3", "4", "5"}, 1, 60, 10, "Padrões"),
		mc("adv-04", entity.TypeVerbal, 6, "Qual alternativa contém um silogismo válido?",
			[]string{
				"Todos os peixes nadam; baleias nadam; logo baleias são peixes",
				"Todos os metais conduzem; cobre é metal; logo cobre conduz",
				"Alguns gatos são pretos; meu animal é preto; logo é gato",
				"Nenhuma ave late; cães latem; logo cães são aves",
			}, 1, 70, 10, "Lógica"),
		num("adv-05", entity.TypeNumerical, 7, "Qual é o próximo termo: 1, 2, 6, 24, 120, ...?",
			720, 60, 10, "Matemática"),
		mc("adv-06", entity.TypeSpatial, 7, "Um dado padrão mostra 3 em cima e 2 de frente. Que número está embaixo?",
			[]string{"1", "4", "5", "6"}, 1, 60, 10, "Espacial"),
		tf("adv-07", entity.TypeLogical, 6, "A negação de 'todos os alunos passaram' é 'nenhum aluno passou'.",
			false, 45, 10, "Lógica"),
		mc("adv-08", entity.TypeVerbal, 7, "EFÊMERO está para PERMANENTE assim como HERMÉTICO está para:",
			[]string{"Fechado", "Acessível", "Obscuro", "Selado"}, 1, 60, 10, "Verbal"),
		num("adv-09", entity.TypeNumerical, 7, "Três torneiras enchem um tanque em 6 horas. Quanto tempo levam 9 torneiras iguais, em horas?",
			2, 75, 10, "Matemática"),
		mc("adv-10", entity.TypeAbstract, 7, "Série: Z1, Y2, X4, W8, ... O próximo termo é:",
			[]string{"V16", "V12", "U16", "W16"}, 0, 60, 10, "Padrões"),
		mc("adv-11", entity.TypeSpatial, 7, "Quantos triângulos há em um triângulo dividido pelas três medianas?",
			[]string{"4", "6", "8", "10"}, 1, 75, 10, "Espacial"),
		num("adv-12", entity.TypeNumerical, 7, "Se a média de cinco números é 14, qual é a soma deles?",
			70, 45, 10, "Matemática"),
		tf("adv-13", entity.TypeAbstract, 6, "Em qualquer sequência aritmética, a diferença entre termos consecutivos é constante.",
			true, 40, 10, "Padrões"),
		mc("adv-14", entity.TypeLogical, 8, "Ana é mais alta que Bia; Bia é mais alta que Clara; Duda é mais baixa que Clara. Quem é a segunda mais baixa?",
			[]string{"Ana", "Bia", "Clara", "Duda"}, 2, 75, 10, "Lógica"),
		mc("adv-15", entity.TypeVerbal, 7, "Qual palavra é sinônimo de 'lacônico'?",
			[]string{"Breve", "Melancólico", "Tardio", "Enérgico"}, 0, 45, 10, "Verbal"),
		num("adv-16", entity.TypeNumerical, 8, "Qual é o próximo número: 4, 9, 19, 39, 79, ...?",
			159, 75, 10, "Matemática"),
		mc("adv-17", entity.TypeSpatial, 8, "Planificando um cubo, qual forma NÃO é uma planificação válida?",
			[]string{"Cruz de 6 quadrados", "Fileira de 6 quadrados", "Escada em T", "Formato em L com 6 quadrados"}, 1, 75, 10, "Espacial"),
	}
}

func expertCatalog() []entity.Question {
	return []entity.Question{
		mc("exp-01", entity.TypeLogical, 8, "Complete: 1, 3, 7, 15, 31, ...",
			[]string{"47", "57", "63", "65"}, 2, 60, 15, "Lógica"),
		num("exp-02", entity.TypeNumerical, 8, "Qual é o próximo termo: 2, 5, 11, 23, 47, ...?",
			95, 70, 15, "Matemática"),
		mc("exp-03", entity.TypeAbstract, 8, "Série: 3A, 6C, 12F, 24J, ... A letra do próximo termo é:",
			[]string{"N", "O", "M", "P"}, 1, 90, 15, "Padrões"),
		num("exp-04", entity.TypeNumerical, 8, "Dois dados são lançados. De quantas formas a soma pode ser 7?",
			6, 75, 15, "Matemática"),
		mc("exp-05", entity.TypeVerbal, 8, "APONIA está para DOR assim como ANARQUIA está para:",
			[]string{"Caos", "Governo", "Povo", "Lei"}, 1, 75, 15, "Verbal"),
		mc("exp-06", entity.TypeSpatial, 9, "Um cubo 4×4×4 pintado por fora é cortado em cubos 1×1×1. Quantos não têm nenhuma face pintada?",
			[]string{"4", "8", "16", "24"}, 1, 120, 15, "Espacial"),
		tf("exp-07", entity.TypeLogical, 8, "Se a afirmação 'esta frase é falsa' for verdadeira, ela é falsa.",
			true, 60, 15, "Lógica"),
		num("exp-08", entity.TypeNumerical, 9, "Qual o menor número que dividido por 3, 4 e 5 deixa sempre resto 1?",
			61, 120, 15, "Matemática"),
		mc("exp-09", entity.TypeAbstract, 9, "Na matriz: 2-4-8 / 3-9-27 / 4-16-?, o valor que falta é:",
			[]string{"32", "48", "64", "128"}, 2, 90, 15, "Padrões"),
		mc("exp-10", entity.TypeLogical, 9, "Cinco pessoas em fila: A não é o primeiro; B está logo após A; C é o último; D está antes de A. Quem pode ser o primeiro?",
			[]string{"A", "B", "D", "C"}, 2, 120, 15, "Lógica"),
		num("exp-11", entity.TypeNumerical, 9, "Um capital dobra a cada 8 anos. Em 24 anos, por quanto foi multiplicado?",
			8, 90, 15, "Matemática"),
		mc("exp-12", entity.TypeVerbal, 9, "Qual alternativa apresenta a relação mais próxima de NAVIO : FROTA?",
			[]string{"Lobo : Alcateia", "Peixe : Mar", "Asa : Avião", "Porto : Barco"}, 0, 75, 15, "Verbal"),
		mc("exp-13", entity.TypeSpatial, 9, "Girando mentalmente a peça em L três vezes 90° no sentido horário, ela fica igual a girá-la uma vez de quantos graus no sentido anti-horário?",
			[]string{"45", "90", "180", "270"}, 1, 90, 15, "Espacial"),
		num("exp-14", entity.TypeNumerical, 9, "Qual é o próximo número: 1, 1, 2, 6, 24, 120, ...?",
			720, 75, 15, "Matemática"),
		tf("exp-15", entity.TypeAbstract, 8, "Toda sequência geométrica de razão maior que 1 é crescente quando o primeiro termo é positivo.",
			true, 60, 15, "Padrões"),
		mc("exp-16", entity.TypeLogical, 9, "Se apenas uma das afirmações 'A mente', 'B mente', 'C mente' é falsa, quantas pessoas mentem?",
			[]string{"0", "1", "2", "3"}, 2, 120, 15, "Lógica"),
		num("exp-17", entity.TypeNumerical, 10, "Qual o próximo termo: 1, 2, 4, 7, 11, 16, 22, ...?",
			29, 75, 15, "Matemática"),
		mc("exp-18", entity.TypeVerbal, 9, "Qual palavra completa: 'quanto mais ___, menos evidente'?",
			[]string{"Críptico", "Explícito", "Notório", "Patente"}, 0, 75, 15, "Verbal"),
		mc("exp-19", entity.TypeAbstract, 10, "Série de pares: (1,2), (2,6), (3,12), (4,20), ... O segundo valor do quinto par é:",
			[]string{"28", "30", "32", "36"}, 1, 120, 15, "Padrões"),
		mc("exp-20", entity.TypeSpatial, 10, "Quantas arestas tem um icosaedro regular?",
			[]string{"20", "24", "30", "36"}, 2, 90, 15, "Espacial"),
		num("exp-21", entity.TypeNumerical, 10, "Três números consecutivos somam 96. Qual é o maior deles?",
			33, 90, 15, "Matemática"),
		tf("exp-22", entity.TypeLogical, 9, "De 'nenhum corvo é branco' segue-se logicamente que 'nada branco é corvo'.",
			true, 60, 15, "Lógica"),
	}
}
